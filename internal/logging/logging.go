package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

const (
	DefaultDir  = "logs"
	DefaultFile = "neural-mesh.log"
)

// Setup points the standard logger at dir/name when debug is set, and at
// io.Discard otherwise. The returned file is nil when logging is disabled;
// callers close it on exit.
func Setup(debug bool, dir, name string) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	log.Println("=== neural-mesh started ===")
	return f
}
