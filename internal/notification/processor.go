package notification

import (
	"context"
	"fmt"
)

// Processor turns events into inbox entries for the affected user.
type Processor struct {
	repo NotificationRepository
}

func NewProcessor(repo NotificationRepository) *Processor {
	return &Processor{repo: repo}
}

// Process writes the inbox entry for event. Events about the actor's own
// action (joined, left) go to the team owner via AffectedUserID as set by
// the emitting service.
func (p *Processor) Process(ctx context.Context, event *Event) error {
	if event.AffectedUserID == 0 {
		return nil
	}
	n := &Notification{
		UserID:  event.AffectedUserID,
		TeamID:  event.TeamID,
		ActorID: event.ActorID,
		Kind:    event.Kind,
		Message: Message(event),
	}
	if err := p.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("store notification: %w", err)
	}
	return nil
}

// Message renders the inbox text for an event.
func Message(event *Event) string {
	team := event.TeamName
	if team == "" {
		team = fmt.Sprintf("team #%d", event.TeamID)
	}
	switch event.Kind {
	case KindInvited:
		return fmt.Sprintf("You have been invited to join %s", team)
	case KindPromotedCaptain:
		return fmt.Sprintf("You are now the captain of %s", team)
	case KindRemoved:
		return fmt.Sprintf("You have been removed from %s", team)
	case KindAuthorizedAdded:
		return fmt.Sprintf("You are now an authorized member of %s", team)
	case KindAuthorizedRemoved:
		return fmt.Sprintf("You are no longer an authorized member of %s", team)
	case KindJoined:
		return fmt.Sprintf("A new player joined %s", team)
	case KindLeft:
		return fmt.Sprintf("A player left %s", team)
	default:
		return fmt.Sprintf("Update from %s", team)
	}
}
