package services

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/wI2L/jsondiff"

	"github.com/iota-uz/refconsole/modules/usergroups/domain/aggregates/group"
	"github.com/iota-uz/refconsole/pkg/bulkdelete"
	"github.com/iota-uz/refconsole/pkg/composables"
	"github.com/iota-uz/refconsole/pkg/eventbus"
)

const ResourceName = "groups"

type GroupService struct {
	repo      group.Repository
	publisher eventbus.EventBus
	protocol  *bulkdelete.Protocol
}

func NewGroupService(repo group.Repository, publisher eventbus.EventBus) *GroupService {
	return &GroupService{
		repo:      repo,
		publisher: publisher,
		protocol: bulkdelete.New(repo, bulkdelete.Options{
			Resource:  ResourceName,
			DeleteURL: repo.DeleteURL(),
		}),
	}
}

func (s *GroupService) Search(ctx context.Context, params *group.FindParams) ([]group.Group, int64, error) {
	if params != nil {
		params.Query = strings.TrimSpace(params.Query)
	}
	return s.repo.Search(ctx, params)
}

func (s *GroupService) GetByID(ctx context.Context, id string) (group.Group, error) {
	return s.repo.GetByID(ctx, id)
}

// Save submits next and publishes a SavedEvent carrying the patch from
// before. before is the zero Group when next is new.
func (s *GroupService) Save(ctx context.Context, before, next group.Group) (group.Group, error) {
	saved, err := s.repo.Save(ctx, next)
	if err != nil {
		return group.Group{}, err
	}
	event := &group.SavedEvent{Group: saved, Created: next.IsNew()}
	if !event.Created {
		patch, err := diff(before, saved)
		if err != nil {
			if logger, lerr := composables.TryUseLogger(ctx); lerr == nil {
				logger.WithError(err).Warn("group diff failed")
			}
		}
		event.Changes = patch
	}
	if s.publisher != nil {
		s.publisher.Publish(event)
	}
	return saved, nil
}

func (s *GroupService) DeleteMultiple(ctx context.Context, items []bulkdelete.Candidate, hooks bulkdelete.Hooks) bulkdelete.Result {
	res := s.protocol.Run(ctx, items, hooks)
	if s.publisher != nil {
		s.publisher.Publish(&bulkdelete.OutcomeEvent{
			Resource:   ResourceName,
			Outcome:    res.Outcome,
			Candidates: items,
		})
	}
	return res
}

type groupSnapshot struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	MemberIDs   []string `json:"memberIds"`
}

func snapshot(g group.Group) groupSnapshot {
	members := g.MemberIDs()
	if members == nil {
		members = []string{}
	}
	return groupSnapshot{
		Code:        g.Code(),
		Name:        g.Name(),
		Description: g.Description(),
		MemberIDs:   members,
	}
}

func diff(before, after group.Group) (jsondiff.Patch, error) {
	patch, err := jsondiff.Compare(snapshot(before), snapshot(after))
	if err != nil {
		return nil, errors.Wrap(err, "compare groups")
	}
	return patch, nil
}
