package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindow(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    []string
	}{
		{"single page", 1, 1, []string{"1"}},
		{"no pages", 1, 0, []string{"1"}},
		{"eight pages", 4, 8, []string{"1", "2", "3", "4", "5", "6", "7", "8"}},
		{"ten pages", 10, 10, []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}},
		{"middle of 25", 13, 25, []string{"1", "...", "11", "12", "13", "14", "15", "...", "25"}},
		{"first of 25", 1, 25, []string{"1", "2", "3", "...", "25"}},
		{"third of 25", 3, 25, []string{"1", "2", "3", "4", "5", "...", "25"}},
		{"fourth of 25", 4, 25, []string{"1", "2", "3", "4", "5", "6", "...", "25"}},
		{"fifth of 25", 5, 25, []string{"1", "...", "3", "4", "5", "6", "7", "...", "25"}},
		{"last of 25", 25, 25, []string{"1", "...", "23", "24", "25"}},
		{"near end of 25", 22, 25, []string{"1", "...", "20", "21", "22", "23", "24", "25"}},
		{"eleven pages", 6, 11, []string{"1", "...", "4", "5", "6", "7", "8", "...", "11"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Labels(Window(tt.current, tt.total)))
		})
	}
}

func TestWindowMarksActivePage(t *testing.T) {
	items := Window(13, 25)

	var active []int
	for _, item := range items {
		if item.Active {
			active = append(active, item.Page)
			assert.False(t, item.Clickable())
		}
	}
	assert.Equal(t, []int{13}, active)

	for _, item := range items {
		if item.Ellipsis {
			assert.False(t, item.Clickable())
		}
	}
	assert.True(t, items[0].Clickable())
}
