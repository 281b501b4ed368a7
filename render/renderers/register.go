package renderers

import "github.com/lixenwraith/princess-guard/render"

// Register adds the game's draw layers to o
func Register(o *render.RenderOrchestrator) {
	o.Register(NewEntityRenderer(), render.PriorityEntities)
	o.Register(NewStatusBarRenderer(), render.PriorityUI)
	o.Register(NewOverlayRenderer(), render.PriorityOverlay)
}
