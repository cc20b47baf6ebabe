package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitName(t *testing.T) {
	tests := []struct {
		input string
		first string
		last  string
	}{
		{"John Michael Doe", "John Michael", "Doe"},
		{"Doe", "", "Doe"},
		{"  Jane   A.  O'Brien ", "Jane A.", "O'Brien"},
		{"", "", ""},
		{"   ", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			first, last := SplitName(tt.input)
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.last, last)
		})
	}
}

func TestExtractHandle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://www.linkedin.com/in/jane-doe/", "jane-doe"},
		{"https://github.com/janedoe", "janedoe"},
		{"github.com/janedoe///", "janedoe"},
		{"janedoe", "janedoe"},
		{"", ""},
		{"/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractHandle(tt.input))
		})
	}
}

func TestCleanURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://jane.dev/", "jane.dev"},
		{"http://jane.dev/blog//", "jane.dev/blog"},
		{"HTTPS://Jane.dev", "Jane.dev"},
		{"jane.dev", "jane.dev"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanURL(tt.input))
		})
	}
}

func TestBulletLines_StripsMarkersAndBlankLines(t *testing.T) {
	lines := BulletLines("• Led team\n- Shipped feature\n\n")
	assert.Equal(t, []string{"Led team", "Shipped feature"}, lines)
}

func TestBulletLines_StripsOnlyOneMarker(t *testing.T) {
	lines := BulletLines("- - nested\n•• double")
	assert.Equal(t, []string{"- nested", "• double"}, lines)
}

func TestBulletLines_SanitizesEachLine(t *testing.T) {
	lines := BulletLines("  • Cut costs by 30%  \n-Owned P&L")
	assert.Equal(t, []string{`Cut costs by 30\%`, `Owned P\&L`}, lines)
}

func TestBulletLines_DropsMarkerOnlyLines(t *testing.T) {
	assert.Empty(t, BulletLines("•\n-\n   \n"))
}

func TestReflowBullets_Items(t *testing.T) {
	result := ReflowBullets("• Led team\n- Shipped feature\n\n", false)
	assert.Equal(t, "\\item Led team\n\\item Shipped feature", result)
}

func TestReflowBullets_Flat(t *testing.T) {
	result := ReflowBullets("• Led team\n- Shipped feature\n\n", true)
	assert.Equal(t, "Led team Shipped feature", result)
}

func TestReflowBullets_Empty(t *testing.T) {
	assert.Equal(t, "", ReflowBullets("", false))
	assert.Equal(t, "", ReflowBullets("\n\n", true))
}

func TestDateRange(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		current bool
		want    string
	}{
		{"both dates", "2019", "2021", false, "2019--2021"},
		{"current with sentinel", "2020", "Present", true, "2020--Present"},
		{"current without end", "2020", "", true, "2020--Present"},
		{"start only", "2020", "", false, "2020"},
		{"end only", "", "2021", false, "2021"},
		{"nothing", "", "", false, ""},
		{"escaped", "Q1_2020", "Q2_2021", false, `Q1\_2020--Q2\_2021`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DateRange(tt.start, tt.end, tt.current))
		})
	}
}
