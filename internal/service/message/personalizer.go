// internal/service/message/personalizer.go
package message

import (
	"fmt"
	"strings"

	"artisan-catalog-service/internal/domain/customer"
)

// NamePlaceholder is the only templating construct supported in custom
// messages. Anything else in the template passes through verbatim.
const NamePlaceholder = "{name}"

// Render produces the per-recipient message. An absent or blank
// template falls back to defaultTemplate. Unknown placeholder tokens
// are left untouched rather than rejected: a malformed template must
// never abort a whole batch.
//
// Render reads only the given recipient. It must never see another
// recipient's data; cross-wiring names between recipients would leak
// one customer's identity into another's chat.
func Render(template string, recipient customer.Customer, defaultTemplate string) string {
	t := template
	if strings.TrimSpace(t) == "" {
		t = defaultTemplate
	}
	return strings.ReplaceAll(t, NamePlaceholder, recipient.Name)
}

// DefaultTemplate composes the stock catalog message for an artisan,
// greeting each recipient by name.
func DefaultTemplate(artisanName string) string {
	return fmt.Sprintf(
		"Hi %s! 👋\n\n🛍️ *%s* Product Catalog\n\nCheck out our latest products!\nBrowse the catalog and place your order.\n\n📱 For orders, reply to this message.",
		NamePlaceholder, artisanName,
	)
}
