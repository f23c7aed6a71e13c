package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/ytag/internal/models"
)

var _ list.Item = tagItem{}

// tagItem wraps [models.TagCount] to implement [list.Item].
type tagItem struct {
	tag models.TagCount
}

func (i tagItem) FilterValue() string { return i.tag.Tag }
func (i tagItem) Title() string       { return i.tag.Tag }
func (i tagItem) Description() string {
	if i.tag.Count == 1 {
		return "1 video"
	}
	return fmt.Sprintf("%d videos", i.tag.Count)
}
