package httpclient

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Zone indexes follow the order of the configured zone prefixes.
const (
	ZoneGreenroom = 0
	ZoneCore      = 1
)

const (
	itemTypeNameFolder = "name_folder"
	itemStatusActive   = "ACTIVE"
	containerProject   = "project"
)

type Item struct {
	Name          string `json:"name"`
	Zone          int    `json:"zone"`
	Type          string `json:"type"`
	Status        string `json:"status"`
	Owner         string `json:"owner"`
	ContainerCode string `json:"container_code"`
	ContainerType string `json:"container_type"`
	Size          int    `json:"size"`
	LocationURI   string `json:"location_uri"`
	Version       string `json:"version"`
}

type BatchItemsRequest struct {
	Items []Item `json:"items"`
}

// MetadataClient talks to the metadata service.
type MetadataClient struct {
	jsonClient
	zones []int
}

// NewMetadataClient creates folders in zoneCount zones, numbered from 0.
func NewMetadataClient(baseURL string, zoneCount int, timeout time.Duration, log *zap.Logger) *MetadataClient {
	return &MetadataClient{
		jsonClient: newJSONClient("metadata", baseURL, timeout, log),
		zones:      lo.Range(zoneCount),
	}
}

// NameFolders builds one active name folder per zone and user, zone-major.
func (c *MetadataClient) NameFolders(users []User, projectCode string) []Item {
	items := make([]Item, 0, len(c.zones)*len(users))
	for _, zone := range c.zones {
		items = append(items, lo.Map(users, func(u User, _ int) Item {
			return Item{
				Name:          u.Name,
				Zone:          zone,
				Type:          itemTypeNameFolder,
				Status:        itemStatusActive,
				Owner:         u.Name,
				ContainerCode: projectCode,
				ContainerType: containerProject,
			}
		})...)
	}
	return items
}

func (c *MetadataClient) CreateUsersNameFolders(ctx context.Context, users []User, projectCode string) error {
	return c.post(ctx, fmt.Sprintf("create name folders for project %q", projectCode), "/v1/items/batch/",
		BatchItemsRequest{Items: c.NameFolders(users, projectCode)}, nil)
}
