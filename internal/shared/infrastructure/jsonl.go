package infrastructure

import (
	"bufio"
	"fmt"
	"io"
)

// maxJSONLineSize taille maximale d'une ligne JSONL acceptée (1 Mo)
const maxJSONLineSize = 1024 * 1024

// ReadJSONLines parcourt un flux JSONL et invoque decode pour chaque ligne
// non vide. Le numéro de ligne est reporté dans les erreurs de décodage
func ReadJSONLines(r io.Reader, decode func(line []byte) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxJSONLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if err := decode(line); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading line %d: %w", lineNo+1, err)
	}
	return nil
}
