package sensevoice

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/asrdrop/errors"
	"github.com/kbukum/asrdrop/httpclient"
	"github.com/kbukum/asrdrop/inbox"
	"github.com/kbukum/asrdrop/logger"
	"github.com/kbukum/asrdrop/observability"
	"github.com/kbukum/asrdrop/transcription"
)

// ProviderName is the registry name of this provider.
const ProviderName = "sensevoice"

// Compile-time interface check.
var _ transcription.Provider = (*Provider)(nil)

// Provider uploads audio from a directory to a SenseVoice-style ASR service.
type Provider struct {
	cfg    Config
	client *httpclient.Client
	opener inbox.Opener
	log    *logger.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithOpener replaces the function used to open audio files.
func WithOpener(o inbox.Opener) Option {
	return func(p *Provider) { p.opener = o }
}

// WithLogger sets the logger. The default is the global logger.
func WithLogger(l *logger.Logger) Option {
	return func(p *Provider) { p.log = l }
}

// NewProvider creates a SenseVoice provider.
func NewProvider(cfg Config, opts ...Option) (*Provider, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sensevoice: %w", err)
	}
	client, err := httpclient.New(cfg.clientConfig())
	if err != nil {
		return nil, fmt.Errorf("sensevoice: %w", err)
	}
	p := &Provider{
		cfg:    cfg,
		client: client,
		opener: inbox.OSOpener,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = logger.GetGlobalLogger()
	}
	p.log = p.log.WithComponent(ProviderName)
	return p, nil
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// Config returns the effective configuration.
func (p *Provider) Config() Config { return p.cfg }

// IsAvailable reports whether the endpoint answers at all. Any status below
// 500 counts: the ASR route typically rejects GET with 405.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	resp, err := p.client.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: p.cfg.URL})
	if resp == nil {
		return false
	}
	return !httpclient.IsServerError(err)
}

// Close releases idle connections.
func (p *Provider) Close(_ context.Context) error {
	p.client.CloseIdleConnections()
	return nil
}

// TranscribeFirst uploads the first audio file found in the input directory.
func (p *Provider) TranscribeFirst(ctx context.Context, lang, keys string) transcription.Result {
	return p.Transcribe(ctx, transcription.Request{Language: lang, Keys: keys, Mode: transcription.ModeSingle})
}

// TranscribeAll uploads every audio file in the input directory in one request.
func (p *Provider) TranscribeAll(ctx context.Context, lang, keys string) transcription.Result {
	return p.Transcribe(ctx, transcription.Request{Language: lang, Keys: keys, Mode: transcription.ModeBatch})
}

// Transcribe runs one invocation. Failures, including panics, come back as
// an error Result. Attributes are added to the span found in ctx.
func (p *Provider) Transcribe(ctx context.Context, req transcription.Request) (res transcription.Result) {
	req = req.WithDefaults()
	ctx, requestID := transcription.EnsureRequestID(ctx)
	log := p.log.WithFields(logger.Fields(
		logger.FieldRequestID, requestID,
		logger.FieldMode, string(req.Mode),
		logger.FieldLanguage, req.Language,
	))

	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.String(observability.AttrEndpoint, p.cfg.URL))

	inv := &invocation{p: p, req: req, requestID: requestID, log: log, span: span}

	defer func() {
		if r := recover(); r != nil {
			res = transcription.Failed(errors.Unexpected(fmt.Errorf("%v", r)))
		}
		res.Uploaded = inv.uploaded
	}()

	return inv.run(ctx)
}

// invocation carries the per-call state of Transcribe.
type invocation struct {
	p         *Provider
	req       transcription.Request
	requestID string
	log       *logger.Logger
	span      trace.Span
	uploaded  int
}

func (inv *invocation) run(ctx context.Context) transcription.Result {
	p, req := inv.p, inv.req

	if appErr := transcription.ValidateLanguage(req.Language); appErr != nil {
		return transcription.Failed(appErr)
	}
	mode, err := transcription.ParseMode(string(req.Mode))
	if err != nil {
		return transcription.Failed(errors.Validation(err.Error()))
	}
	batch := mode == transcription.ModeBatch

	entries, err := inbox.Scan(p.cfg.InputDir)
	if err != nil {
		return transcription.Failed(asAppError(err))
	}
	selected := inbox.Select(entries, batch)
	inv.span.SetAttributes(attribute.Int(observability.AttrFileCount, len(selected)))

	handles, err := inbox.OpenAll(p.opener, selected)
	if err != nil {
		return transcription.Failed(asAppError(err))
	}
	defer handles.Close()

	if batch {
		inv.log.Info("Processing batch", logger.Fields("files", inbox.Names(selected)))
	} else {
		inv.log.Info("Processing file", logger.Fields(logger.FieldFilename, selected[0].Name))
	}

	body := &httpclient.MultipartBody{Fields: map[string]string{"lang": req.Language}}
	if req.HasKeys() {
		body.Fields["keys"] = req.Keys
	}
	for _, h := range handles.Items() {
		body.Files = append(body.Files, httpclient.FileField{
			FieldName:   "files",
			FileName:    h.Name,
			ContentType: inbox.UploadContentType(h.Name),
			Reader:      h.Reader,
		})
	}

	resp, err := p.client.Do(ctx, httpclient.Request{
		Method:  http.MethodPost,
		Path:    p.cfg.URL,
		Headers: map[string]string{"X-Request-ID": inv.requestID},
		Body:    body,
	})
	_ = handles.Close()

	if resp == nil {
		return transcription.Failed(inv.transportError(err))
	}
	inv.uploaded = len(selected)
	inv.span.SetAttributes(attribute.Int(observability.AttrHTTPStatus, resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		return transcription.Failed(errors.ASRAPIError(resp.StatusCode, string(resp.Body)).WithCause(err))
	}

	if batch {
		b, appErr := parseBatch(resp.Body, len(selected), req.Language)
		if appErr != nil {
			return transcription.Failed(appErr)
		}
		return transcription.Batched(b)
	}

	t, appErr := parseSingle(resp.Body, selected[0].Name, req.Language)
	if appErr != nil {
		return transcription.Failed(appErr)
	}
	return transcription.Single(t)
}

// transportError maps a failure that produced no response.
func (inv *invocation) transportError(err error) *errors.AppError {
	cfg := inv.p.cfg
	var hcErr *httpclient.Error
	if !stderrors.As(err, &hcErr) {
		return errors.RequestFailed(err)
	}
	switch hcErr.Code {
	case httpclient.ErrCodeTimeout:
		return errors.Timeout(cfg.Timeout.String(), err)
	case httpclient.ErrCodeConnection:
		return errors.ConnectionFailed(cfg.URL, err)
	case httpclient.ErrCodeEncode:
		return errors.FileError(cfg.InputDir, hcErr.Err)
	default:
		cause := hcErr.Err
		if cause == nil {
			cause = hcErr
		}
		return errors.RequestFailed(cause)
	}
}

func asAppError(err error) *errors.AppError {
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr
	}
	return errors.Unexpected(err)
}
