// internal/service/segment/resolver.go
package segment

import (
	"artisan-catalog-service/internal/domain/customer"
	"artisan-catalog-service/internal/domain/dispatch"
	xerrors "artisan-catalog-service/internal/pkg/errors"
)

// Resolve turns an audience selection into a deduplicated, ordered
// recipient list drawn from the given customer snapshot.
//
//   - SelectAll keeps the snapshot's order untouched.
//   - SelectByTags includes customers carrying at least one of the tags
//     (OR across tags), first-seen order preserved.
//   - SelectByIDs looks ids up in the snapshot; unknown ids are
//     silently skipped since a customer may have been deleted between
//     selection and dispatch, and duplicate ids collapse to the first
//     occurrence.
//
// Resolution yielding zero recipients fails with ErrEmptySelection.
// Ordering is deterministic so dispatch summaries are reproducible.
func Resolve(sel dispatch.AudienceSelection, customers []customer.Customer) ([]customer.Customer, error) {
	if err := sel.Validate(); err != nil {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, err.Error())
	}

	var recipients []customer.Customer

	switch sel.Mode {
	case dispatch.SelectAll:
		recipients = append(recipients, customers...)

	case dispatch.SelectByTags:
		if len(sel.Tags) == 0 {
			return nil, xerrors.ErrEmptySelection
		}
		wanted := make(map[string]struct{}, len(sel.Tags))
		for _, t := range sel.Tags {
			wanted[t] = struct{}{}
		}
		for _, c := range customers {
			for _, t := range c.Tags {
				if _, ok := wanted[t]; ok {
					recipients = append(recipients, c)
					break
				}
			}
		}

	case dispatch.SelectByIDs:
		byID := make(map[string]customer.Customer, len(customers))
		for _, c := range customers {
			byID[c.ID] = c
		}
		picked := make(map[string]struct{}, len(sel.CustomerIDs))
		for _, id := range sel.CustomerIDs {
			if _, dup := picked[id]; dup {
				continue
			}
			c, ok := byID[id]
			if !ok {
				continue
			}
			picked[id] = struct{}{}
			recipients = append(recipients, c)
		}
	}

	if len(recipients) == 0 {
		return nil, xerrors.ErrEmptySelection
	}

	return recipients, nil
}
