package vocabulary

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// FileSource loads custom terminology and code sets from a JSON file.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (f *FileSource) Name() string { return "file:" + f.path }

type fileDocument struct {
	Terms []struct {
		Term          string   `json:"term"`
		Kind          string   `json:"kind"`
		Category      string   `json:"category"`
		Synonyms      []string `json:"synonyms"`
		Abbreviations []string `json:"abbreviations"`
		Codes         []struct {
			Code        string `json:"code"`
			System      string `json:"system"`
			Description string `json:"description"`
			Category    string `json:"category"`
		} `json:"codes"`
	} `json:"terms"`
	Codes []struct {
		Code        string   `json:"code"`
		System      string   `json:"system"`
		Description string   `json:"description"`
		Category    string   `json:"category"`
		Synonyms    []string `json:"synonyms"`
		ParentCodes []string `json:"parent_codes"`
		ChildCodes  []string `json:"child_codes"`
	} `json:"codes"`
	Abbreviations map[string]string `json:"abbreviations"`
}

func (f *FileSource) Load(_ context.Context, b *Builder) error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("read vocabulary file: %w", err)
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse vocabulary file: %w", err)
	}

	for _, t := range doc.Terms {
		term := MedicalTerm{
			CanonicalName: t.Term,
			Kind:          t.Kind,
			Category:      t.Category,
			Synonyms:      t.Synonyms,
			Abbreviations: t.Abbreviations,
		}
		if term.Kind == "" {
			term.Kind = KindCondition
		}
		for _, c := range t.Codes {
			term.Codes = append(term.Codes, CodeRef{
				Code:        c.Code,
				System:      System(c.System),
				Description: c.Description,
				Category:    c.Category,
			})
		}
		if err := b.AddTerm(term); err != nil {
			return err
		}
	}

	for _, c := range doc.Codes {
		code := MedicalCode{
			Code:        c.Code,
			System:      System(c.System),
			Description: c.Description,
			Category:    c.Category,
			Synonyms:    c.Synonyms,
			ParentCodes: c.ParentCodes,
			ChildCodes:  c.ChildCodes,
		}
		if err := b.AddCode(code); err != nil {
			return err
		}
	}

	for abbrev, expansion := range doc.Abbreviations {
		if err := b.AddAbbreviation(abbrev, expansion); err != nil {
			return err
		}
	}

	return nil
}
