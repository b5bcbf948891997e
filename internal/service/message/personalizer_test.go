package message

import (
	"strings"
	"testing"

	"artisan-catalog-service/internal/domain/customer"

	"github.com/stretchr/testify/assert"
)

func TestRenderReplacesNamePlaceholder(t *testing.T) {
	rec := customer.Customer{ID: "c1", Name: "Ana"}

	got := Render("Hi {name}, new catalog!", rec, "fallback")

	assert.Equal(t, "Hi Ana, new catalog!", got)
}

func TestRenderReplacesEveryOccurrence(t *testing.T) {
	rec := customer.Customer{Name: "Bo"}

	got := Render("{name}, this one is for {name}", rec, "fallback")

	assert.Equal(t, "Bo, this one is for Bo", got)
}

func TestRenderBlankTemplateFallsBack(t *testing.T) {
	rec := customer.Customer{Name: "Ana"}

	assert.Equal(t, "Hello Ana", Render("", rec, "Hello {name}"))
	assert.Equal(t, "Hello Ana", Render("   \n\t", rec, "Hello {name}"))
}

func TestRenderUnknownTokensPassThrough(t *testing.T) {
	rec := customer.Customer{Name: "Ana"}

	got := Render("Hi {name}, order via {phone} or {NAME}", rec, "")

	// Only the exact {name} token is templating; everything else is
	// literal text.
	assert.Equal(t, "Hi Ana, order via {phone} or {NAME}", got)
}

func TestRenderUsesOnlyGivenRecipient(t *testing.T) {
	a := customer.Customer{ID: "c1", Name: "Ana"}
	b := customer.Customer{ID: "c2", Name: "Bo"}

	gotA := Render("Hi {name}", a, "")
	gotB := Render("Hi {name}", b, "")

	assert.Equal(t, "Hi Ana", gotA)
	assert.Equal(t, "Hi Bo", gotB)
	assert.NotContains(t, gotA, "Bo")
	assert.NotContains(t, gotB, "Ana")
}

func TestDefaultTemplateGreetsByName(t *testing.T) {
	tpl := DefaultTemplate("Meera Crafts")

	assert.True(t, strings.HasPrefix(tpl, "Hi {name}!"))
	assert.Contains(t, tpl, "*Meera Crafts* Product Catalog")

	got := Render("", customer.Customer{Name: "Ana"}, tpl)
	assert.Contains(t, got, "Hi Ana!")
}
