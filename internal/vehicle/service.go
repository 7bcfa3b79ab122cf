package vehicle

import (
	"context"

	"github.com/Sapatchanon-Kh/CarTentManagement/internal/lifecycle"
)

type CreateRequest struct {
	Name      string
	Brand     string
	Model     string
	SubModel  string
	Year      int
	Mileage   int
	Condition string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Vehicle, error)
	GetByID(ctx context.Context, id string) (*Vehicle, error)
	List(ctx context.Context, page, pageSize int) ([]*Vehicle, int, error)

	// TransitionState moves the vehicle's listing state, enforcing the
	// lifecycle graph. Callers must hold the vehicle's lock when the
	// transition is part of a read-modify-write sequence.
	TransitionState(ctx context.Context, id string, to lifecycle.State) (*Vehicle, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Vehicle, error) {
	v := &Vehicle{
		Name:      req.Name,
		Brand:     req.Brand,
		Model:     req.Model,
		SubModel:  req.SubModel,
		Year:      req.Year,
		Mileage:   req.Mileage,
		Condition: req.Condition,
		State:     lifecycle.StateUnlisted,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Vehicle, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, page, pageSize int) ([]*Vehicle, int, error) {
	return s.repo.List(ctx, page, pageSize)
}

func (s *service) TransitionState(ctx context.Context, id string, to lifecycle.State) (*Vehicle, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := lifecycle.Transition(v.State, to)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateState(ctx, id, next); err != nil {
		return nil, err
	}
	v.State = next
	return v, nil
}
