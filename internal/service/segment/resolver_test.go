package segment

import (
	"testing"

	"artisan-catalog-service/internal/domain/customer"
	"artisan-catalog-service/internal/domain/dispatch"
	xerrors "artisan-catalog-service/internal/pkg/errors"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot() []customer.Customer {
	return []customer.Customer{
		{ID: "c1", Name: "Ana", Phone: "+919000000001", Tags: pq.StringArray{"vip", "delhi"}},
		{ID: "c2", Name: "Bo", Phone: "+919000000002", Tags: pq.StringArray{"vip"}},
		{ID: "c3", Name: "Cy", Phone: "+919000000003", Tags: pq.StringArray{"delhi"}},
	}
}

func ids(customers []customer.Customer) []string {
	out := make([]string, 0, len(customers))
	for _, c := range customers {
		out = append(out, c.ID)
	}
	return out
}

func TestResolveAllKeepsSnapshotOrder(t *testing.T) {
	recipients, err := Resolve(dispatch.AudienceSelection{Mode: dispatch.SelectAll}, snapshot())
	require.NoError(t, err)

	assert.Equal(t, []string{"c1", "c2", "c3"}, ids(recipients))
}

func TestResolveByTagsMatchesAnyTag(t *testing.T) {
	recipients, err := Resolve(dispatch.AudienceSelection{
		Mode: dispatch.SelectByTags,
		Tags: []string{"vip"},
	}, snapshot())
	require.NoError(t, err)

	assert.Equal(t, []string{"c1", "c2"}, ids(recipients))
}

func TestResolveByTagsIsUnionNotIntersection(t *testing.T) {
	recipients, err := Resolve(dispatch.AudienceSelection{
		Mode: dispatch.SelectByTags,
		Tags: []string{"vip", "delhi"},
	}, snapshot())
	require.NoError(t, err)

	// c1 carries both tags but appears once.
	assert.Equal(t, []string{"c1", "c2", "c3"}, ids(recipients))
}

func TestResolveByTagsEmptyTagListIsEmptySelection(t *testing.T) {
	_, err := Resolve(dispatch.AudienceSelection{Mode: dispatch.SelectByTags}, snapshot())
	assert.ErrorIs(t, err, xerrors.ErrEmptySelection)
}

func TestResolveByTagsNoMatchesIsEmptySelection(t *testing.T) {
	_, err := Resolve(dispatch.AudienceSelection{
		Mode: dispatch.SelectByTags,
		Tags: []string{"wholesale"},
	}, snapshot())
	assert.ErrorIs(t, err, xerrors.ErrEmptySelection)
}

func TestResolveByIDsSkipsUnknownAndDeduplicates(t *testing.T) {
	recipients, err := Resolve(dispatch.AudienceSelection{
		Mode:        dispatch.SelectByIDs,
		CustomerIDs: []string{"c3", "missing", "c1", "c3"},
	}, snapshot())
	require.NoError(t, err)

	// Requested order wins, unknown ids vanish, duplicates collapse.
	assert.Equal(t, []string{"c3", "c1"}, ids(recipients))
}

func TestResolveByIDsAllUnknownIsEmptySelection(t *testing.T) {
	_, err := Resolve(dispatch.AudienceSelection{
		Mode:        dispatch.SelectByIDs,
		CustomerIDs: []string{"ghost"},
	}, snapshot())
	assert.ErrorIs(t, err, xerrors.ErrEmptySelection)
}

func TestResolveEmptySnapshotIsEmptySelection(t *testing.T) {
	_, err := Resolve(dispatch.AudienceSelection{Mode: dispatch.SelectAll}, nil)
	assert.ErrorIs(t, err, xerrors.ErrEmptySelection)
}

func TestResolveRejectsMixedSelections(t *testing.T) {
	// Malformed selections are the caller's fault and must carry the
	// invalid-input sentinel so the API layer maps them to 400.
	_, err := Resolve(dispatch.AudienceSelection{
		Mode: dispatch.SelectAll,
		Tags: []string{"vip"},
	}, snapshot())
	require.ErrorIs(t, err, xerrors.ErrInvalidInput)

	_, err = Resolve(dispatch.AudienceSelection{
		Mode:        dispatch.SelectByTags,
		Tags:        []string{"vip"},
		CustomerIDs: []string{"c1"},
	}, snapshot())
	require.ErrorIs(t, err, xerrors.ErrInvalidInput)

	_, err = Resolve(dispatch.AudienceSelection{Mode: "everyone"}, snapshot())
	require.ErrorIs(t, err, xerrors.ErrInvalidInput)
}
