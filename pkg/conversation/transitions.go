package conversation

import "github.com/raykavin/orderalert/pkg/session"

// Action is what a text input asks the engine to do in a given state
type Action int

const (
	// ActionNone redisplays the menu of the current state
	ActionNone Action = iota
	ActionProfile
	ActionInfo
	ActionEnableOrders
	ActionDisableOrders
	ActionEnableAppeals
	ActionDisableAppeals
	ActionAdminPanel
	ActionLogout
	ActionBack
	ActionBroadcast
	ActionUserList
	ActionStats
	ActionEditInfo
	ActionConfirmBroadcast
	ActionConfirmInfo

	// free text actions
	ActionSubmitLogin
	ActionSubmitPassword
	ActionConfirmLogout
	ActionDraftBroadcast
	ActionDraftInfo
)

// Transitions maps the exact button labels accepted in each state
var Transitions = map[session.State]map[string]Action{
	session.StateMainMenu: {
		ProfileButton:        ActionProfile,
		InfoButton:           ActionInfo,
		EnableOrdersButton:   ActionEnableOrders,
		DisableOrdersButton:  ActionDisableOrders,
		EnableAppealsButton:  ActionEnableAppeals,
		DisableAppealsButton: ActionDisableAppeals,
		AdminButton:          ActionAdminPanel,
	},
	session.StateProfile: {
		BackButton:   ActionBack,
		LogoutButton: ActionLogout,
	},
	session.StateInfo: {
		BackButton:     ActionBack,
		EditInfoButton: ActionEditInfo,
	},
	session.StateAdminMenu: {
		BroadcastButton: ActionBroadcast,
		UsersButton:     ActionUserList,
		StatsButton:     ActionStats,
		EditInfoButton:  ActionEditInfo,
		BackButton:      ActionBack,
	},
	session.StateBroadcast: {
		BackButton: ActionBack,
	},
	session.StateBroadcastConfirm: {
		ConfirmSendButton: ActionConfirmBroadcast,
		BackButton:        ActionBack,
	},
	session.StateUserList: {
		BackButton: ActionBack,
	},
	session.StateEditInfo: {
		BackButton: ActionBack,
	},
	session.StateEditInfoConfirm: {
		ConfirmSaveButton: ActionConfirmInfo,
		BackButton:        ActionBack,
	},
}

// FreeText maps the states collecting user input to the action consuming it
var FreeText = map[session.State]Action{
	session.StateLogin:         ActionSubmitLogin,
	session.StatePassword:      ActionSubmitPassword,
	session.StateLogoutConfirm: ActionConfirmLogout,
	session.StateBroadcast:     ActionDraftBroadcast,
	session.StateEditInfo:      ActionDraftInfo,
}

// Resolve returns the action for text in state. Button labels take priority
// over free text; anything else resolves to ActionNone.
func Resolve(state session.State, text string) Action {
	if action, ok := Transitions[state][text]; ok {
		return action
	}
	if action, ok := FreeText[state]; ok {
		return action
	}
	return ActionNone
}

var adminActions = map[Action]bool{
	ActionAdminPanel:       true,
	ActionBroadcast:        true,
	ActionUserList:         true,
	ActionStats:            true,
	ActionEditInfo:         true,
	ActionConfirmBroadcast: true,
	ActionConfirmInfo:      true,
	ActionDraftBroadcast:   true,
	ActionDraftInfo:        true,
}

var adminStates = map[session.State]bool{
	session.StateAdminMenu:        true,
	session.StateBroadcast:        true,
	session.StateBroadcastConfirm: true,
	session.StateUserList:         true,
	session.StateEditInfo:         true,
	session.StateEditInfoConfirm:  true,
}

// requiresAdmin reports whether performing action in state needs the admin role
func requiresAdmin(state session.State, action Action) bool {
	return adminActions[action] || adminStates[state]
}
