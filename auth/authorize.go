// Package auth holds the pure authorization rules. Deciding whether a caller
// may perform an action never touches the database: everything needed is the
// caller's resolved identity and, for the two ownership-sensitive actions,
// the id the action targets.
package auth

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnuragDayal94/role-based-task-manager/models"
)

type Action string

const (
	ActionCreateTask Action = "task:create"
	ActionListTasks  Action = "task:list"
	ActionUpdateTask Action = "task:update-status"
	ActionDeleteTask Action = "task:delete"
	ActionListUsers  Action = "user:list"
	ActionCreateUser Action = "user:create"
	ActionDeleteUser Action = "user:delete"
	ActionReadOwn    Action = "user:profile"
)

// Allow decides whether caller may perform action. The meaning of target
// depends on the action: the task's assignee for ActionUpdateTask, the user
// being deleted for ActionDeleteUser, ignored otherwise.
//
// Listing tasks is allowed for everyone authenticated; how much of the task
// set a caller sees is shaped by the query in the task service, not here.
func Allow(caller models.User, action Action, target primitive.ObjectID) bool {
	switch action {
	case ActionCreateTask, ActionDeleteTask, ActionListUsers, ActionCreateUser:
		return caller.IsAdmin()
	case ActionUpdateTask:
		return caller.IsAdmin() || caller.ID == target
	case ActionDeleteUser:
		return caller.IsAdmin() && caller.ID != target
	case ActionListTasks, ActionReadOwn:
		return true
	}
	return false
}
