package controller

import (
	"campadmin/model/restmodel"
	"campadmin/service"
)

type EditorResponse[T any] struct {
	Key            string                   `json:"key"`
	IsDraft        bool                     `json:"is_draft"`
	Config         T                        `json:"config"`
	UnsavedChanges bool                     `json:"unsaved_changes"`
	Status         service.SaveStatus       `json:"status"`
	CanSave        bool                     `json:"can_save"`
	Errors         service.ValidationErrors `json:"errors"`
	LastError      string                   `json:"last_error,omitempty"`
}

type TrainingEditorResponse struct {
	EditorResponse[restmodel.RegistrationFormConfig]
	SeasonEvent restmodel.SeasonEvent `json:"season_event"`
}

type SelectRequest struct {
	Key   string `json:"key" binding:"required"`
	Force bool   `json:"force"`
}

type SelectSeasonRequest struct {
	EventId string `json:"event_id" binding:"required"`
	Force   bool   `json:"force"`
}

type DraftRequest struct {
	Force bool `json:"force"`
}

type NameRequest struct {
	Name string `json:"name"`
}

type ListItemRequest struct {
	Value string `json:"value"`
}

type MoveRequest struct {
	Direction service.MoveDirection `json:"direction" binding:"required,oneof=up down"`
}

type BindSeasonRequest struct {
	EventId string `json:"event_id" binding:"required"`
}

type UnsavedResponse struct {
	UnsavedChanges bool `json:"unsaved_changes"`
}

func toEditorResponse[T any](state service.EditorState[T], canSave bool) EditorResponse[T] {
	return EditorResponse[T]{
		Key:            state.Key.String(),
		IsDraft:        state.Key.IsDraft(),
		Config:         state.Draft,
		UnsavedChanges: state.Dirty,
		Status:         state.Status,
		CanSave:        canSave,
		Errors:         state.Errors,
		LastError:      state.LastError,
	}
}

func toTrainingEditorResponse(editor *service.TrainingEditor) TrainingEditorResponse {
	return TrainingEditorResponse{
		EditorResponse: toEditorResponse(editor.State(), editor.CanSave()),
		SeasonEvent:    editor.Event,
	}
}

func toTournamentEditorResponse(editor *service.TournamentEditor) EditorResponse[restmodel.TournamentSpecificConfig] {
	return toEditorResponse(editor.State(), editor.CanSave())
}

func toTryoutEditorResponse(editor *service.TryoutEditor) EditorResponse[restmodel.TryoutSpecificConfig] {
	return toEditorResponse(editor.State(), editor.CanSave())
}
