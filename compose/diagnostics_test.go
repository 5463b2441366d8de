package compose

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staxtools/stax/document"
	"github.com/staxtools/stax/staxerrors"
)

func TestDiagnosticString(t *testing.T) {
	tests := []struct {
		name string
		diag Diagnostic
		want string
	}{
		{
			name: "all fields",
			diag: Diagnostic{
				Stage:    StageMerge,
				Category: "type_conflict",
				Identity: document.Identity{Kind: "ConfigMap", Name: "cfg"},
				Path:     "data.retries",
				Message:  "cannot merge mapping into scalar, patch value wins",
			},
			want: "[merge] type_conflict ConfigMap/cfg at data.retries: cannot merge mapping into scalar, patch value wins",
		},
		{
			name: "no identity",
			diag: Diagnostic{
				Stage:    StageTransform,
				Category: "no_targets",
				Message:  "AddCommonLabel matched no documents",
			},
			want: "[transform] no_targets: AddCommonLabel matched no documents",
		},
		{
			name: "cause fills in for a missing message",
			diag: Diagnostic{
				Stage:    StageCompose,
				Category: "duplicate_identity",
				Cause:    errors.New("boom"),
			},
			want: "[compose] duplicate_identity: boom",
		},
		{
			name: "message wins over cause",
			diag: Diagnostic{
				Stage:    StageCompose,
				Category: "duplicate_identity",
				Message:  "told you",
				Cause:    errors.New("boom"),
			},
			want: "[compose] duplicate_identity: told you",
		},
		{
			name: "minimal",
			diag: Diagnostic{Stage: StageCompose, Category: "odd"},
			want: "[compose] odd",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.diag.String())
		})
	}
}

func TestDiagnosticUnwrap(t *testing.T) {
	cause := &staxerrors.PathNotFoundError{Kind: "Deployment", Name: "web", Path: "spec.x", Segment: "x"}
	d := &Diagnostic{Stage: StageTransform, Category: "path_not_found", Cause: cause}

	assert.ErrorIs(t, d.Unwrap(), staxerrors.ErrPathNotFound)
	assert.Nil(t, (&Diagnostic{}).Unwrap())
}

func TestDiagnostics(t *testing.T) {
	ds := Diagnostics{
		{Stage: StageMerge, Category: "type_conflict", Severity: SeverityWarning},
		nil,
		{Stage: StageTransform, Category: "no_targets", Severity: SeverityInfo},
		{Stage: StageMerge, Category: "missing_merge_key", Severity: SeverityWarning},
	}

	t.Run("Strings skips nil entries", func(t *testing.T) {
		got := ds.Strings()
		require.Len(t, got, 3)
		assert.Equal(t, "[merge] type_conflict", got[0])
	})

	t.Run("ByStage filters", func(t *testing.T) {
		assert.Len(t, ds.ByStage(StageMerge), 2)
		assert.Len(t, ds.ByStage(StageTransform), 1)
		assert.Empty(t, ds.ByStage(StageCompose))
	})

	t.Run("HasWarnings ignores informational entries", func(t *testing.T) {
		assert.True(t, ds.HasWarnings())
		assert.False(t, Diagnostics{}.HasWarnings())
		assert.False(t, Diagnostics{
			{Stage: StageTransform, Category: "no_targets", Severity: SeverityInfo},
		}.HasWarnings())
		assert.True(t, Diagnostics{
			{Stage: StageCompose, Category: "odd", Severity: SeverityCritical},
		}.HasWarnings())
	})
}
