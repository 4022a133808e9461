package debugui

import (
	"github.com/plus3/chopper/ecs"
)

type EntityBrowser struct {
	cache              *EntityBrowserCache
	selected           ecs.EntityID
	hasSelection       bool
	filterText         string
	filterSignature    *ecs.Signature
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspector struct {
	reflection *ReflectionCache
}

type SystemViewer struct {
	sortColumn    int
	sortAscending bool
	selected      *ecs.Signature
}

type PerformanceStats struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

type SignatureDebugger struct {
	selected map[ecs.ComponentID]bool
}
