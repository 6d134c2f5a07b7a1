package export

import (
	"github.com/forecourt/go-dealers/core"
)

var _ core.FeedExporter = (*Exporter)(nil)
