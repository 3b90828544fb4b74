package tui

import (
	"slate-cli/internal/model"
)

type view int

const (
	viewProjects view = iota
	viewEntities
	viewDetail
)

// entityTab selects which collection the project workspace shows.
type entityTab int

const (
	tabSequences entityTab = iota
	tabShots
	tabAssets
	tabPeople
)

var entityTabs = []entityTab{tabSequences, tabShots, tabAssets, tabPeople}

func (t entityTab) title() string {
	switch t {
	case tabSequences:
		return "Sequences"
	case tabShots:
		return "Shots"
	case tabAssets:
		return "Assets"
	case tabPeople:
		return "People"
	}
	return ""
}

func (t entityTab) kind() model.Kind {
	switch t {
	case tabSequences:
		return model.KindSequence
	case tabShots:
		return model.KindShot
	case tabAssets:
		return model.KindAsset
	case tabPeople:
		return model.KindPerson
	}
	return ""
}

// detailTab selects the lower pane of the detail view.
type detailTab int

const (
	detailTabInfo detailTab = iota
	detailTabTasks
	detailTabNotes
)

type modalKind int

const (
	modalNone modalKind = iota
	modalStatusPicker
	modalConfirmDelete
	modalCreate
	modalNote
	modalActions
)

// action is an entry in the actions panel.
type action int

const (
	actionEditStatus action = iota
	actionDelete
)

func (a action) label() string {
	switch a {
	case actionEditStatus:
		return "Edit status"
	case actionDelete:
		return "Delete"
	}
	return ""
}
