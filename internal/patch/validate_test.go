package patch

import (
	"errors"
	"testing"
)

const validateFile = `line one
line two
line three
line four`

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		diff    string
		wantErr error
	}{
		{
			name: "matching leading context",
			diff: "@@ -2,2 +2,2 @@\n line two\n-line three\n+line 3\n",
		},
		{
			name: "no leading context is structurally valid",
			diff: "@@ -2,1 +2,1 @@\n-line two\n+line 2\n",
		},
		{
			name:    "context mismatch",
			diff:    "@@ -2,2 +2,2 @@\n line TWO\n-line three\n+line 3\n",
			wantErr: ErrValidation,
		},
		{
			name:    "context runs past end of file",
			diff:    "@@ -4,2 +4,2 @@\n line four\n line five\n-x\n+y\n",
			wantErr: ErrValidation,
		},
		{
			name:    "no hunks",
			diff:    "not a diff at all\n",
			wantErr: ErrNoHunks,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(validateFile, tt.diff)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateChecksOnlyLeadingRun(t *testing.T) {
	// Context lines after the first removal are not re-verified.
	diff := "@@ -1,3 +1,3 @@\n line one\n-line two\n+line 2\n DRIFTED context\n"
	if err := Validate(validateFile, diff); err != nil {
		t.Errorf("trailing context must not be validated, got error: %v", err)
	}
}
