package vtn

import (
	"context"
	"fmt"

	"github.com/elaadnl/openadr3-go/model"
)

const vensPrefix = "vens"

// VensReader is the read access to the VENs collection of a VTN.
type VensReader interface {
	List(ctx context.Context, filter VenFilter) ([]model.ExistingVen, error)
	Get(ctx context.Context, venID string) (model.ExistingVen, error)
	ListResources(ctx context.Context, venID string, filter ResourceFilter) ([]model.ExistingResource, error)
	GetResource(ctx context.Context, venID, resourceID string) (model.ExistingResource, error)
}

// Vens is the full read-write access to the VENs collection, including
// the nested resources of each VEN.
type Vens interface {
	VensReader
	Create(ctx context.Context, ven *model.NewVen) (model.ExistingVen, error)
	Update(ctx context.Context, venID string, ven model.ExistingVen) (model.ExistingVen, error)
	Delete(ctx context.Context, venID string) error
	CreateResource(ctx context.Context, venID string, resource *model.NewResource) (model.ExistingResource, error)
	UpdateResource(ctx context.Context, venID, resourceID string, resource model.ExistingResource) (model.ExistingResource, error)
	DeleteResource(ctx context.Context, venID, resourceID string) error
}

// VensClient implements Vens against the HTTP interface of a VTN.
type VensClient struct {
	c *Client
}

// NewVensClient returns a VENs client on the given VTN connection.
func NewVensClient(c *Client) *VensClient {
	return &VensClient{c: c}
}

// List retrieves VENs matching the filter.
func (vc *VensClient) List(ctx context.Context, filter VenFilter) ([]model.ExistingVen, error) {
	q, err := filterQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("encode ven filter: %w", err)
	}
	var vens []model.ExistingVen
	if err := vc.c.get(ctx, vensPrefix, q, &vens); err != nil {
		return nil, err
	}
	return vens, nil
}

// Get retrieves a VEN by its identifier.
func (vc *VensClient) Get(ctx context.Context, venID string) (model.ExistingVen, error) {
	var ven model.ExistingVen
	if err := vc.c.get(ctx, vensPrefix+"/"+venID, nil, &ven); err != nil {
		return model.ExistingVen{}, err
	}
	return ven, nil
}

// Create pushes a new VEN to the VTN and returns the created VEN.
func (vc *VensClient) Create(ctx context.Context, ven *model.NewVen) (model.ExistingVen, error) {
	if err := ven.Validate(); err != nil {
		return model.ExistingVen{}, fmt.Errorf("validate new ven: %w", err)
	}
	if err := ven.MarkCreated(); err != nil {
		return model.ExistingVen{}, err
	}
	var created model.ExistingVen
	if err := vc.c.post(ctx, vensPrefix, ven, &created); err != nil {
		ven.ReleaseCreated()
		return model.ExistingVen{}, err
	}
	return created, nil
}

// Update replaces the VEN with the given identifier.
func (vc *VensClient) Update(ctx context.Context, venID string, ven model.ExistingVen) (model.ExistingVen, error) {
	if venID != ven.ID {
		return model.ExistingVen{}, fmt.Errorf("ven id %q does not match id %q of the updated ven", venID, ven.ID)
	}
	if err := ven.Validate(); err != nil {
		return model.ExistingVen{}, fmt.Errorf("validate ven: %w", err)
	}
	var updated model.ExistingVen
	if err := vc.c.put(ctx, vensPrefix+"/"+venID, ven, &updated); err != nil {
		return model.ExistingVen{}, err
	}
	return updated, nil
}

// Delete removes the VEN with the given identifier.
func (vc *VensClient) Delete(ctx context.Context, venID string) error {
	return vc.c.delete(ctx, vensPrefix+"/"+venID)
}

// ListResources retrieves resources of a VEN matching the filter.
func (vc *VensClient) ListResources(ctx context.Context, venID string, filter ResourceFilter) ([]model.ExistingResource, error) {
	q, err := filterQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("encode resource filter: %w", err)
	}
	var resources []model.ExistingResource
	if err := vc.c.get(ctx, vensPrefix+"/"+venID+"/resources", q, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

// GetResource retrieves a resource of a VEN by its identifier.
func (vc *VensClient) GetResource(ctx context.Context, venID, resourceID string) (model.ExistingResource, error) {
	var resource model.ExistingResource
	if err := vc.c.get(ctx, vensPrefix+"/"+venID+"/resources/"+resourceID, nil, &resource); err != nil {
		return model.ExistingResource{}, err
	}
	return resource, nil
}

// CreateResource pushes a new resource under the given VEN.
func (vc *VensClient) CreateResource(ctx context.Context, venID string, resource *model.NewResource) (model.ExistingResource, error) {
	if err := resource.Validate(); err != nil {
		return model.ExistingResource{}, fmt.Errorf("validate new resource: %w", err)
	}
	if err := resource.MarkCreated(); err != nil {
		return model.ExistingResource{}, err
	}
	var created model.ExistingResource
	if err := vc.c.post(ctx, vensPrefix+"/"+venID+"/resources", resource, &created); err != nil {
		resource.ReleaseCreated()
		return model.ExistingResource{}, err
	}
	return created, nil
}

// UpdateResource replaces a resource of a VEN.
func (vc *VensClient) UpdateResource(ctx context.Context, venID, resourceID string, resource model.ExistingResource) (model.ExistingResource, error) {
	if resourceID != resource.ID {
		return model.ExistingResource{}, fmt.Errorf("resource id %q does not match id %q of the updated resource", resourceID, resource.ID)
	}
	if err := resource.Validate(); err != nil {
		return model.ExistingResource{}, fmt.Errorf("validate resource: %w", err)
	}
	var updated model.ExistingResource
	if err := vc.c.put(ctx, vensPrefix+"/"+venID+"/resources/"+resourceID, resource, &updated); err != nil {
		return model.ExistingResource{}, err
	}
	return updated, nil
}

// DeleteResource removes a resource of a VEN.
func (vc *VensClient) DeleteResource(ctx context.Context, venID, resourceID string) error {
	return vc.c.delete(ctx, vensPrefix+"/"+venID+"/resources/"+resourceID)
}
