package storage

import (
	"context"
	"fmt"
)

type ThemeRepo struct {
	kv KV
}

func NewThemeRepo(kv KV) *ThemeRepo {
	return &ThemeRepo{kv: kv}
}

// Get returns the stored theme, falling back to light for absent or unknown values.
func (r *ThemeRepo) Get(ctx context.Context) (Theme, error) {
	v, ok, err := r.kv.Get(ctx, KeyTheme)
	if err != nil {
		return ThemeLight, fmt.Errorf("theme get: %w", err)
	}
	t := Theme(v)
	if !ok || !t.IsValid() {
		return ThemeLight, nil
	}
	return t, nil
}

func (r *ThemeRepo) Set(ctx context.Context, t Theme) error {
	if !t.IsValid() {
		return fmt.Errorf("invalid theme: %q", t)
	}
	if err := r.kv.Set(ctx, KeyTheme, string(t)); err != nil {
		return fmt.Errorf("theme set: %w", err)
	}
	return nil
}
