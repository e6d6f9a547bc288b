package vtn

import (
	"context"
	"fmt"

	"github.com/elaadnl/openadr3-go/model"
)

const programsPrefix = "programs"

// ProgramsReader is the read access to the programs collection of a VTN.
type ProgramsReader interface {
	List(ctx context.Context, filter ProgramFilter) ([]model.ExistingProgram, error)
	Get(ctx context.Context, programID string) (model.ExistingProgram, error)
}

// Programs is the full read-write access to the programs collection.
type Programs interface {
	ProgramsReader
	Create(ctx context.Context, program *model.NewProgram) (model.ExistingProgram, error)
	Update(ctx context.Context, programID string, program model.ExistingProgram) (model.ExistingProgram, error)
	Delete(ctx context.Context, programID string) error
}

// ProgramsClient implements Programs against the HTTP interface of a VTN.
type ProgramsClient struct {
	c *Client
}

// NewProgramsClient returns a programs client on the given VTN connection.
func NewProgramsClient(c *Client) *ProgramsClient {
	return &ProgramsClient{c: c}
}

// List retrieves programs matching the filter.
func (pc *ProgramsClient) List(ctx context.Context, filter ProgramFilter) ([]model.ExistingProgram, error) {
	q, err := filterQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("encode program filter: %w", err)
	}
	var programs []model.ExistingProgram
	if err := pc.c.get(ctx, programsPrefix, q, &programs); err != nil {
		return nil, err
	}
	return programs, nil
}

// Get retrieves a program by its identifier.
func (pc *ProgramsClient) Get(ctx context.Context, programID string) (model.ExistingProgram, error) {
	var program model.ExistingProgram
	if err := pc.c.get(ctx, programsPrefix+"/"+programID, nil, &program); err != nil {
		return model.ExistingProgram{}, err
	}
	return program, nil
}

// Create pushes a new program to the VTN and returns the created program.
func (pc *ProgramsClient) Create(ctx context.Context, program *model.NewProgram) (model.ExistingProgram, error) {
	if err := program.Validate(); err != nil {
		return model.ExistingProgram{}, fmt.Errorf("validate new program: %w", err)
	}
	if err := program.MarkCreated(); err != nil {
		return model.ExistingProgram{}, err
	}
	var created model.ExistingProgram
	if err := pc.c.post(ctx, programsPrefix, program, &created); err != nil {
		program.ReleaseCreated()
		return model.ExistingProgram{}, err
	}
	return created, nil
}

// Update replaces the program with the given identifier.
func (pc *ProgramsClient) Update(ctx context.Context, programID string, program model.ExistingProgram) (model.ExistingProgram, error) {
	if programID != program.ID {
		return model.ExistingProgram{}, fmt.Errorf("program id %q does not match id %q of the updated program", programID, program.ID)
	}
	if err := program.Validate(); err != nil {
		return model.ExistingProgram{}, fmt.Errorf("validate program: %w", err)
	}
	var updated model.ExistingProgram
	if err := pc.c.put(ctx, programsPrefix+"/"+programID, program, &updated); err != nil {
		return model.ExistingProgram{}, err
	}
	return updated, nil
}

// Delete removes the program with the given identifier.
func (pc *ProgramsClient) Delete(ctx context.Context, programID string) error {
	return pc.c.delete(ctx, programsPrefix+"/"+programID)
}
