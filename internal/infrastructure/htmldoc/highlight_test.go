package htmldoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighlight(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		wantCount int
		contains  []string
		excludes  []string
	}{
		{
			name:      "wraps each measurement",
			page:      `<body><p>Chest 100 cm, waist 32in and 9.5 inch</p></body>`,
			wantCount: 3,
			contains: []string{
				`<mark class="sizeshop-highlight">100 cm</mark>`,
				`<mark class="sizeshop-highlight">32in</mark>`,
				`<mark class="sizeshop-highlight">9.5 inch</mark>`,
				"Chest ",
			},
		},
		{
			name:      "skips scripts and strips them",
			page:      `<body><script>var x = "40cm";</script><p>Length 70cm</p></body>`,
			wantCount: 1,
			excludes:  []string{"<script", "40cm"},
		},
		{
			name:      "ignores words that only start with a unit",
			page:      `<body><p>Size 10 inches tall, 3 income streams</p></body>`,
			wantCount: 0,
		},
		{
			name:      "unit is case sensitive",
			page:      `<body><p>Chest 100 CM</p></body>`,
			wantCount: 0,
		},
		{
			name:      "drops foreign classes and handlers",
			page:      `<body><p class="x" onclick="steal()">Inseam 81cm</p></body>`,
			wantCount: 1,
			excludes:  []string{"onclick", `class="x"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, count, err := Highlight([]byte(tt.page))
			require.NoError(t, err)

			assert.Equal(t, tt.wantCount, count)
			assert.Equal(t, tt.wantCount, strings.Count(out, `<mark class="sizeshop-highlight">`))
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestHighlight_RejectsInvalidInput(t *testing.T) {
	_, _, err := Highlight(nil)
	assert.ErrorIs(t, err, ErrEmptyDocument)
}
