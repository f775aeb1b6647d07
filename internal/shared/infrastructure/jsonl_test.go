package infrastructure

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// TestReadJSONLines vérifie le parcours d'un flux JSONL
func TestReadJSONLines(t *testing.T) {
	input := strings.Join([]string{
		`{"n": 1}`,
		``,
		`{"n": 2}`,
		`{"n": 3}`,
	}, "\n")

	var values []int
	err := ReadJSONLines(strings.NewReader(input), func(line []byte) error {
		var doc struct {
			N int `json:"n"`
		}
		if err := json.Unmarshal(line, &doc); err != nil {
			return err
		}
		values = append(values, doc.N)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	// Les lignes vides sont ignorées
	if len(values) != 3 || values[0] != 1 || values[2] != 3 {
		t.Errorf("values = %v, attendu [1 2 3]", values)
	}
}

// TestReadJSONLinesReportsLineNumber vérifie que l'erreur de décodage porte
// le numéro de ligne fautif
func TestReadJSONLinesReportsLineNumber(t *testing.T) {
	input := "{\"n\": 1}\nnot json\n"

	wantErr := errors.New("bad document")
	err := ReadJSONLines(strings.NewReader(input), func(line []byte) error {
		if line[0] != '{' {
			return wantErr
		}
		return nil
	})

	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, attendu %v enveloppée", err, wantErr)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("err = %q, numéro de ligne absent", err)
	}
}

// TestReadJSONLinesEmptyStream vérifie le flux vide
func TestReadJSONLinesEmptyStream(t *testing.T) {
	err := ReadJSONLines(strings.NewReader(""), func([]byte) error {
		t.Fatal("decode appelé sur un flux vide")
		return nil
	})
	if err != nil {
		t.Errorf("err = %v, attendu nil", err)
	}
}
