package audit

import (
	"net/http"
	"strings"
)

// 監査ログのaction_type。閉じた型ではないので未知の値も書ける。
type ActionType string

const (
	ActionCreate     ActionType = "CREATE"
	ActionUpdate     ActionType = "UPDATE"
	ActionDelete     ActionType = "DELETE"
	ActionDeactivate ActionType = "DEACTIVATE"
	ActionActivate   ActionType = "ACTIVATE"
	ActionLogin      ActionType = "LOGIN"
	ActionLogout     ActionType = "LOGOUT"
	ActionDownload   ActionType = "DOWNLOAD"
	ActionUpload     ActionType = "UPLOAD"
)

// table_affected
const (
	TableProducts = "products"
	TableBrands   = "brands"
	TableUsers    = "users"
)

var knownActions = map[ActionType]struct{}{
	ActionCreate:     {},
	ActionUpdate:     {},
	ActionDelete:     {},
	ActionDeactivate: {},
	ActionActivate:   {},
	ActionLogin:      {},
	ActionLogout:     {},
	ActionDownload:   {},
	ActionUpload:     {},
}

// Known reports whether a is in the canonical set.
func (a ActionType) Known() bool {
	_, ok := knownActions[a]
	return ok
}

// 変更前の状態を読むべき操作
func (a ActionType) ReadsPriorState() bool {
	switch a {
	case ActionUpdate, ActionDelete, ActionDeactivate, ActionActivate:
		return true
	}
	return false
}

// 変更後の状態を残す操作（無効化・削除はnew_valuesを残さない）
func (a ActionType) WritesNewState() bool {
	switch a {
	case ActionDelete, ActionDeactivate:
		return false
	}
	return true
}

// InferAction maps a request method and path to an action type using the
// route conventions: POST creates, PUT/PATCH update, DELETE deactivates.
// A mutating request on an "/activate" path is ACTIVATE whatever the verb.
// ok is false for non-mutating methods.
func InferAction(method, path string) (ActionType, bool) {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
	default:
		return "", false
	}
	if strings.HasSuffix(strings.TrimSuffix(path, "/"), "/activate") {
		return ActionActivate, true
	}

	switch method {
	case http.MethodPost:
		return ActionCreate, true
	case http.MethodDelete:
		return ActionDeactivate, true
	}
	return ActionUpdate, true
}
