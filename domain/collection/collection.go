package collection

import (
	"github.com/x-xyz/goimx/base/ctx"
	"github.com/x-xyz/goimx/domain"
)

type Collection struct {
	// Ethereum address of the ERC721 contract
	Address domain.Address `json:"address" mapstructure:"address"`
	// URL of the tile image for this collection
	CollectionImageUrl *string `json:"collection_image_url" mapstructure:"collection_image_url"`
	Description        *string `json:"description" mapstructure:"description"`
	// URL of the icon for this collection
	IconUrl        *string `json:"icon_url" mapstructure:"icon_url"`
	MetadataApiUrl *string `json:"metadata_api_url" mapstructure:"metadata_api_url"`
	Name           string  `json:"name" mapstructure:"name"`
	ProjectId      int64   `json:"project_id" mapstructure:"project_id"`
}

type Api interface {
	GetCollection(c ctx.Ctx, address domain.Address) (*Collection, error)
}
