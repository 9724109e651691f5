package keywords

import "widget-srv/internal/widget"

// All returns every keyword widget type.
func All() []widget.Widget {
	return []widget.Widget{
		NewSearchVolume(),
		NewSearchVolumeTable(),
		NewListUniversalAdditionalProperty(),
	}
}
