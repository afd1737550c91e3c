package listview

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	name  string
	phone string
}

func fields(r record) []string {
	return []string{r.name, r.phone}
}

func TestFilterMatchesAnyField(t *testing.T) {
	records := []record{
		{name: "Demo Parent", phone: "0911223344"},
		{name: "Test Parent", phone: "0922334455"},
	}

	assert.Len(t, Filter(records, "demo", fields), 1)
	assert.Len(t, Filter(records, "0922", fields), 1)
	assert.Len(t, Filter(records, "PARENT", fields), 2)
}

func TestFilterEmptyTermMatchesAll(t *testing.T) {
	records := []record{{name: "a"}, {name: "b"}}
	assert.Len(t, Filter(records, "", fields), 2)
	assert.Len(t, Filter(records, "   ", fields), 2)
}

func TestFilterNoMatchYieldsEmptyWithoutMutation(t *testing.T) {
	records := []record{{name: "Demo Parent"}}
	out := Filter(records, "zzz", fields)
	assert.Empty(t, out)
	assert.Equal(t, "Demo Parent", records[0].name)
}

func TestPaginateTwelveRecordsPageSizeFive(t *testing.T) {
	records := make([]record, 12)
	for i := range records {
		records[i] = record{name: fmt.Sprintf("r%d", i)}
	}

	page1 := Paginate(records, 1, 5)
	require.Equal(t, 3, page1.TotalPages)
	require.Equal(t, 12, page1.TotalCount)
	assert.Len(t, page1.Items, 5)

	page3 := Paginate(records, 3, 5)
	assert.Len(t, page3.Items, 2)

	// beyond the end: empty, not an error
	page4 := Paginate(records, 4, 5)
	assert.Empty(t, page4.Items)
	assert.Equal(t, 3, page4.TotalPages)
}

func TestPaginateEmptyCollection(t *testing.T) {
	page := Paginate([]record{}, 1, 5)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)
	assert.Equal(t, 0, page.TotalCount)
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 3, ClampPage(4, 3))
	assert.Equal(t, 2, ClampPage(2, 3))
	assert.Equal(t, 1, ClampPage(0, 3))
	assert.Equal(t, 1, ClampPage(5, 0))
}
