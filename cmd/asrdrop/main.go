// Command asrdrop uploads audio files dropped into an input directory to a
// SenseVoice ASR service and prints the transcription as JSON.
//
//	asrdrop transcribe [-batch] [-lang zh] [-keys "..."]
//	asrdrop serve
//	asrdrop watch [-batch]
//	asrdrop version
package main

import (
	"context"
	"os"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
