// Package reorder turns drag-end descriptors into new documents.
//
// A drag names what was dragged, where it came from and where it was dropped.
// Days live in the top-level container ContainerDays; activities live in a
// container named by their day id. A drop outside any container has no
// destination and changes nothing.
package reorder

import (
	"fmt"

	"tableflip.dev/trip/pkg/activity"
	"tableflip.dev/trip/pkg/itinerary"
)

// ContainerDays is the container id of the day list itself.
const ContainerDays = "days"

// ItemKind is the kind of item that was dragged.
type ItemKind string

const (
	KindDay      ItemKind = "day"
	KindActivity ItemKind = "activity"
)

// Location is a position inside a container.
type Location struct {
	ContainerID string `json:"droppableId"`
	Index       int    `json:"index"`
}

func (l Location) String() string {
	return fmt.Sprintf("%s[%d]", l.ContainerID, l.Index)
}

// DragEnd describes a finished drag.
type DragEnd struct {
	Type        ItemKind  `json:"type"`
	Source      Location  `json:"source"`
	Destination *Location `json:"destination"`
}

// Result reports what Apply did.
type Result struct {
	Applied       bool
	Kind          ItemKind
	NoDestination bool
	CrossDay      bool
	// Moved is the activity that changed days or position.
	Moved *activity.Activity
}

// Apply performs the drag on doc. doc itself is never modified; when nothing
// applies the returned document is a copy equal to doc.
func Apply(doc itinerary.Document, drag DragEnd) (itinerary.Document, Result) {
	res := Result{Kind: drag.Type}
	if drag.Destination == nil {
		res.NoDestination = true
		return doc.Clone(), res
	}
	dst := *drag.Destination

	switch drag.Type {
	case KindDay:
		if drag.Source.ContainerID != ContainerDays || dst.ContainerID != ContainerDays || len(doc.Days) == 0 {
			return doc.Clone(), res
		}
		res.Applied = true
		return itinerary.ReorderDays(doc, drag.Source.Index, dst.Index), res

	case KindActivity, "":
		out, ok := itinerary.MoveActivity(doc, drag.Source.ContainerID, drag.Source.Index, dst.ContainerID, dst.Index)
		if !ok {
			return out, res
		}
		res.Kind = KindActivity
		res.Applied = true
		res.CrossDay = drag.Source.ContainerID != dst.ContainerID
		if day, found := itinerary.FindDay(out, dst.ContainerID); found && len(day.Activities) > 0 {
			i := dst.Index
			if i < 0 {
				i = 0
			}
			if i >= len(day.Activities) {
				i = len(day.Activities) - 1
			}
			moved := day.Activities[i]
			res.Moved = &moved
		}
		return out, res
	}
	return doc.Clone(), res
}
