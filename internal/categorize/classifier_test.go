package categorize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/insightdelivered/statement-insights/internal/config"
)

func TestCategory_Defaults(t *testing.T) {
	c := New(config.DefaultCategories())

	tests := []struct {
		description string
		want        string
	}{
		{"POS Grocery Mart", "groceries"},
		{"UBER TRIP 4421", "transport"},
		{"Netflix subscription", "entertainment"},
		{"Payroll Deposit ACME", "income"},
		{"CITY HYDRO BILL", "utilities"},
		{"zxqvblt holdings", Other},
		{"", Other},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Category(tt.description), "description %q", tt.description)
	}
}

func TestCategory_CaseInsensitive(t *testing.T) {
	c := New(config.DefaultCategories())

	assert.Equal(t, c.Category("coffee shop"), c.Category("COFFEE SHOP"))
	assert.Equal(t, "dining", c.Category("COFFEE SHOP"))
}

func TestCategory_FirstRuleWinsOnSharedKeyword(t *testing.T) {
	rules := []config.CategoryRule{
		{Name: "first", Keywords: []string{"acme"}},
		{Name: "second", Keywords: []string{"acme", "other-kw"}},
	}
	c := New(rules)

	assert.Equal(t, "first", c.Category("payment to ACME corp"))
	assert.Equal(t, "second", c.Category("payment with other-kw"))
}

func TestCategory_EarlierRuleBeatsLaterMatch(t *testing.T) {
	// "coffee shop" hits both dining ("coffee") and shopping ("shop");
	// dining is declared first and must win
	c := New(config.DefaultCategories())
	assert.Equal(t, "dining", c.Category("coffee shop downtown"))
}

func TestFirstMatch_NoMatch(t *testing.T) {
	c := New(config.DefaultCategories())

	_, ok := c.FirstMatch("completely unrelated text")
	assert.False(t, ok)
}

func TestNew_EmptyRules(t *testing.T) {
	c := New(nil)

	assert.Equal(t, 0, c.PatternCount())
	assert.Equal(t, Other, c.Category("anything at all"))
}

func TestNew_DedupesKeywords(t *testing.T) {
	rules := []config.CategoryRule{
		{Name: "a", Keywords: []string{"shared", "Shared", " shared "}},
		{Name: "b", Keywords: []string{"shared"}},
	}
	c := New(rules)

	assert.Equal(t, 1, c.PatternCount())
	assert.Equal(t, "a", c.Category("a shared keyword"))
}
