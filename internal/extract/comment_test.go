package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanComment(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "Budget approved", "Budget approved"},
		{"mixed marks and trailing space", "-= Delayed ", "Delayed"},
		{"only marks", "-=-=", Null},
		{"empty", "", Null},
		{"whitespace only", " \n\t ", Null},
		{"sentinel stays", Null, Null},
		{"equals run", "=== Signed off", "Signed off"},
		{"inner dash kept", "- item - sub item", "item - sub item"},
		{"surrounding whitespace", "  --  text  ", "text"},
		{"multiline body", "On track\nnext review in May\n", "On track\nnext review in May"},
		{"other punctuation kept", "==> see notes", "> see notes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanComment(tt.raw))
		})
	}
}

func TestCleanComment_Idempotent(t *testing.T) {
	inputs := []string{"Budget approved", "-= Delayed ", "  ==x", "a - b", "-=-= ok =-"}
	for _, in := range inputs {
		once := CleanComment(in)
		assert.Equal(t, once, CleanComment(once), "input %q", in)
	}
}
