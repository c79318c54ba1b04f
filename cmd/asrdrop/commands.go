package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/kbukum/asrdrop/bootstrap"
	"github.com/kbukum/asrdrop/inbox"
	"github.com/kbukum/asrdrop/logger"
	"github.com/kbukum/asrdrop/server"
	"github.com/kbukum/asrdrop/transcription"
	"github.com/kbukum/asrdrop/version"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

const usage = `Usage: asrdrop <command> [flags]

Commands:
  transcribe  upload the input directory once and print the result as JSON
  serve       expose transcription over HTTP
  watch       transcribe whenever audio files land in the input directory
  version     print version information

Run "asrdrop <command> -h" for the flags of a command.
`

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	switch args[0] {
	case "transcribe":
		return transcribeCmd(ctx, args[1:], stdout, stderr)
	case "serve":
		return serveCmd(ctx, args[1:], stderr)
	case "watch":
		return watchCmd(ctx, args[1:], stdout, stderr)
	case "version", "-version", "--version":
		info := version.GetVersionInfo()
		fmt.Fprintln(stdout, info.String())
		return exitOK
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return exitUsage
	}
}

// requestFlags are shared by transcribe and watch.
type requestFlags struct {
	configPath string
	mode       string
	batch      bool
	lang       string
	keys       string
	url        string
	inputDir   string
}

func (f *requestFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "path to config.yml")
	fs.StringVar(&f.mode, "mode", string(transcription.ModeSingle), "single or batch")
	fs.BoolVar(&f.batch, "batch", false, "shorthand for -mode batch")
	fs.StringVar(&f.lang, "lang", transcription.DefaultLanguage, "language hint: auto, zh, en, yue, ja, ko, nospeech")
	fs.StringVar(&f.keys, "keys", "", "hotwords, sent verbatim when not blank")
	fs.StringVar(&f.url, "url", "", "ASR endpoint, overrides asr.url")
	fs.StringVar(&f.inputDir, "input-dir", "", "input directory, overrides asr.input_dir")
}

func (f *requestFlags) request() transcription.Request {
	mode := transcription.Mode(f.mode)
	if f.batch {
		mode = transcription.ModeBatch
	}
	return transcription.Request{Language: f.lang, Keys: f.keys, Mode: mode}
}

func (f *requestFlags) load() (*AppConfig, error) {
	cfg, err := loadConfig(f.configPath)
	if err != nil {
		return nil, err
	}
	if f.url != "" {
		cfg.ASR.URL = f.url
	}
	if f.inputDir != "" {
		cfg.ASR.InputDir = f.inputDir
	}
	return cfg, nil
}

// newApp loads the config and wires telemetry and the provider.
func newApp(ctx context.Context, cfg *AppConfig, opts ...bootstrap.Option) (*bootstrap.App[*AppConfig], transcription.Provider, error) {
	app, err := bootstrap.NewApp(cfg, opts...)
	if err != nil {
		return nil, nil, err
	}
	metrics, err := setupTelemetry(ctx, app)
	if err != nil {
		return nil, nil, err
	}
	p, err := newProvider(app, metrics)
	if err != nil {
		return nil, nil, err
	}
	return app, p, nil
}

func transcribeCmd(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("transcribe", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var flags requestFlags
	flags.register(fs)
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	cfg, err := flags.load()
	if err != nil {
		fmt.Fprintf(stderr, "asrdrop: %v\n", err)
		return exitFailure
	}
	app, p, err := newApp(ctx, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "asrdrop: %v\n", err)
		return exitFailure
	}

	var result transcription.Result
	err = app.RunTask(ctx, func(ctx context.Context) error {
		result = p.Transcribe(ctx, flags.request())
		return result.Err()
	})
	if werr := writeResult(stdout, result); werr != nil {
		fmt.Fprintf(stderr, "asrdrop: %v\n", werr)
		return exitFailure
	}
	if err != nil {
		return exitFailure
	}
	return exitOK
}

func serveCmd(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to config.yml")
	port := fs.Int("port", 0, "listen port, overrides server.port")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "asrdrop: %v\n", err)
		return exitFailure
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	app, p, err := newApp(ctx, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "asrdrop: %v\n", err)
		return exitFailure
	}

	srv, err := server.New(cfg.Server, app.Logger.WithComponent("server"))
	if err != nil {
		fmt.Fprintf(stderr, "asrdrop: %v\n", err)
		return exitFailure
	}
	srv.RegisterDefaultEndpoints(cfg.Name, cfg.Version, p)
	srv.RegisterTranscription(p)
	app.OnStart(srv.Start)
	app.OnStop(srv.Stop)

	if err := app.Run(ctx); err != nil {
		fmt.Fprintf(stderr, "asrdrop: %v\n", err)
		return exitFailure
	}
	return exitOK
}

func watchCmd(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var flags requestFlags
	flags.register(fs)
	debounce := fs.Duration("debounce", 0, "quiet period before an upload, overrides watch.debounce")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	cfg, err := flags.load()
	if err != nil {
		fmt.Fprintf(stderr, "asrdrop: %v\n", err)
		return exitFailure
	}
	if *debounce > 0 {
		cfg.Watch.Debounce = *debounce
	}
	app, p, err := newApp(ctx, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "asrdrop: %v\n", err)
		return exitFailure
	}

	w := inbox.NewWatcher(cfg.ASR.InputDir, cfg.Watch.Debounce, app.Logger)
	req := flags.request()
	err = app.RunTask(ctx, func(ctx context.Context) error {
		return w.Run(ctx, func(ctx context.Context) {
			result := p.Transcribe(ctx, req)
			if err := writeResult(stdout, result); err != nil {
				app.Logger.Error("Failed to write result", logger.ErrorFields("write", err))
			}
		})
	})
	if err != nil {
		fmt.Fprintf(stderr, "asrdrop: %v\n", err)
		return exitFailure
	}
	return exitOK
}

// parseFlags reports false with the exit code when the command should not run.
func parseFlags(fs *flag.FlagSet, args []string) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK, false
		}
		return exitUsage, false
	}
	return exitOK, true
}

// writeResult prints one result followed by a newline. Batch results keep
// the service's bytes, so the document may span lines.
func writeResult(w io.Writer, r transcription.Result) error {
	data, err := r.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
