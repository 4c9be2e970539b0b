package vocabulary

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGSource loads reference terminology and code tables from Postgres. It is
// read once at startup, before the store is frozen; the pool is not used
// afterwards for vocabulary access.
type PGSource struct {
	pool *pgxpool.Pool
}

func NewPGSource(pool *pgxpool.Pool) *PGSource {
	return &PGSource{pool: pool}
}

func (s *PGSource) Name() string { return "postgres" }

func (s *PGSource) Load(ctx context.Context, b *Builder) error {
	if err := s.loadTerms(ctx, b); err != nil {
		return err
	}
	if err := s.loadCodes(ctx, b); err != nil {
		return err
	}
	return s.loadAbbreviations(ctx, b)
}

func (s *PGSource) loadTerms(ctx context.Context, b *Builder) error {
	rows, err := s.pool.Query(ctx,
		`SELECT canonical_name, COALESCE(kind,'conditions'), COALESCE(category,''),
		        COALESCE(synonyms,'{}'), COALESCE(abbreviations,'{}')
		 FROM reference_terms
		 ORDER BY canonical_name`)
	if err != nil {
		return fmt.Errorf("reference terms query: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var t MedicalTerm
		if err := rows.Scan(&t.CanonicalName, &t.Kind, &t.Category, &t.Synonyms, &t.Abbreviations); err != nil {
			return err
		}
		if err := b.AddTerm(t); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (s *PGSource) loadCodes(ctx context.Context, b *Builder) error {
	rows, err := s.pool.Query(ctx,
		`SELECT code, system, description, COALESCE(category,''),
		        COALESCE(synonyms,'{}'), COALESCE(parent_codes,'{}'), COALESCE(child_codes,'{}')
		 FROM reference_codes
		 ORDER BY system, code`)
	if err != nil {
		return fmt.Errorf("reference codes query: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c MedicalCode
		if err := rows.Scan(&c.Code, &c.System, &c.Description, &c.Category, &c.Synonyms, &c.ParentCodes, &c.ChildCodes); err != nil {
			return err
		}
		if err := b.AddCode(c); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (s *PGSource) loadAbbreviations(ctx context.Context, b *Builder) error {
	rows, err := s.pool.Query(ctx,
		`SELECT abbreviation, expansion FROM reference_abbreviations ORDER BY abbreviation`)
	if err != nil {
		return fmt.Errorf("reference abbreviations query: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var abbrev, expansion string
		if err := rows.Scan(&abbrev, &expansion); err != nil {
			return err
		}
		if err := b.AddAbbreviation(abbrev, expansion); err != nil {
			return err
		}
	}
	return rows.Err()
}
