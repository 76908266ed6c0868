package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Dental Excellence", "Dental_Excellence"},
		{"Clínica Odontológica Sonríe", "Clinica_Odontologica_Sonrie"},
		{"  Dr. Peña & Asociados  ", "Dr_Pena_Asociados"},
		{"Ñandú/Dental", "Nandu_Dental"},
		{"123 Smile", "123_Smile"},
		{"???", "listing"},
		{"", "listing"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.in))
		})
	}
}

func TestFilename(t *testing.T) {
	at := time.Date(2026, 1, 5, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "rapport_Dental_Excellence_20260105.json", Filename("Dental Excellence", at, ""))
	assert.Equal(t, "rapport_Dental_Excellence_20260105.yaml", Filename("Dental Excellence", at, ".yaml"))
	assert.Equal(t, Filename("Dental Excellence", at, "json"), Filename("Dental Excellence", at.Add(-time.Hour), "json"))
}
