package employee

import (
	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/eventbus"
	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/events"
)

// LifecycleNotifier turns successful persistence results into lifecycle
// events. It holds no state and applies no business rule beyond
// "publish on success": the service must only call it after its
// transaction committed.
type LifecycleNotifier interface {
	EmployeeCreated(empl Employee)
	EmployeeUpdated(empl Employee)
	EmployeeDeleted(empl Employee)
}

type noopLifecycleNotifier struct{}

func NewNoopLifecycleNotifier() LifecycleNotifier {
	return noopLifecycleNotifier{}
}

func (noopLifecycleNotifier) EmployeeCreated(Employee) {}
func (noopLifecycleNotifier) EmployeeUpdated(Employee) {}
func (noopLifecycleNotifier) EmployeeDeleted(Employee) {}

type busLifecycleNotifier struct {
	bus *eventbus.Bus
}

func NewLifecycleNotifier(bus *eventbus.Bus) LifecycleNotifier {
	return &busLifecycleNotifier{bus: bus}
}

func snapshot(empl Employee) events.EmployeeSnapshot {
	return events.EmployeeSnapshot{
		EmployeeID:  empl.ID.String(),
		CompanyID:   empl.CompanyID.String(),
		FullName:    empl.FullName,
		Email:       empl.Email,
		BadgeNumber: empl.BadgeNumber,
	}
}

func (n *busLifecycleNotifier) EmployeeCreated(empl Employee) {
	n.bus.Publish(events.New(events.EmployeeCreatedPayload{EmployeeSnapshot: snapshot(empl)}))
}

func (n *busLifecycleNotifier) EmployeeUpdated(empl Employee) {
	n.bus.Publish(events.New(events.EmployeeUpdatedPayload{EmployeeSnapshot: snapshot(empl)}))
}

func (n *busLifecycleNotifier) EmployeeDeleted(empl Employee) {
	n.bus.Publish(events.New(events.EmployeeDeletedPayload{EmployeeSnapshot: snapshot(empl)}))
}
