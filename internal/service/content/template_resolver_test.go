package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wireshell/internal/domain"
)

func TestTemplateResolver_Resolve(t *testing.T) {
	tests := []struct {
		name     string
		template string
		wantErr  error
	}{
		{name: "existing template", template: "basic-page"},
		{name: "surrounding whitespace ignored", template: "  basic-page "},
		{name: "unknown template", template: "missing", wantErr: domain.ErrTemplateNotFound},
		{name: "template flagged no parents", template: "system", wantErr: domain.ErrTemplateDisallowsNewPages},
		{name: "empty name", template: "", wantErr: domain.ErrValidation},
	}

	f := newFixture()
	resolver := NewTemplateResolver(f.templates, testLogger())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl, err := resolver.Resolve(context.Background(), tt.template)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 1, domain.ExitCode(err))
				assert.Nil(t, tpl)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "basic-page", tpl.Name)
		})
	}
}

func TestTemplateResolver_Messages(t *testing.T) {
	f := newFixture()
	resolver := NewTemplateResolver(f.templates, testLogger())

	_, err := resolver.Resolve(context.Background(), "missing")
	assert.EqualError(t, err, "Template 'missing' doesn't exist!")

	_, err = resolver.Resolve(context.Background(), "system")
	assert.EqualError(t, err, "Template 'system' is not allowed to be used for new pages!")
}
