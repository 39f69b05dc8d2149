package logs

import (
	"log"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

var output *os.File

// InitializeFileLogger routes the standard logger to ~/.readers/logs.txt, so
// parse progress doesn't interleave with command output.
func InitializeFileLogger() {
	home, err := homedir.Dir()
	if err != nil {
		log.Fatalf("couldn't resolve home directory: %s", err)
	}
	dir := filepath.Join(home, ".readers")
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("couldn't create %s directory: %s", dir, err)
	}
	f, err := os.Create(filepath.Join(dir, "logs.txt"))
	if err != nil {
		log.Fatalf("couldn't create logs file: %s", err)
	}
	output = f
	log.SetOutput(output)
}

func CloseLogger() {
	if output != nil {
		output.Close()
	}
}
