// Package inbox discovers audio files dropped into an input directory and
// manages the file handles opened for upload.
//
// Discovery is non-recursive and classifies by extension only: direct
// children that are regular files ending in .wav or .mp3 (any case).
// No content sniffing is done.
//
//	entries, err := inbox.Scan("data/inputs")
//	handles, err := inbox.OpenAll(inbox.OSOpener, inbox.Select(entries, false))
//	defer handles.Close()
package inbox
