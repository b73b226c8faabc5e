package ui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/splitview/internal/engine/params"
)

// PanelOverlay returns an overlay that draws p as a window of sliders in
// the top-right corner.
func PanelOverlay(title string, p *params.Panel) func() {
	return func() {
		vp := imgui.MainViewport()
		pos := vp.WorkPos()
		size := vp.WorkSize()
		imgui.SetNextWindowPosV(imgui.NewVec2(pos.X+size.X-10, pos.Y+10), imgui.CondFirstUseEver, imgui.NewVec2(1, 0))

		if imgui.Begin(title) {
			for _, f := range p.Fields() {
				drawField(f)
			}
		}
		imgui.End()
	}
}

func drawField(f *params.Field) {
	lo, hi := f.Range()
	v := f.Value()
	format := "%.1f"
	if f.Step() == 0 {
		format = "%.0f"
	}
	if imgui.SliderFloatV(f.Label(), &v, lo, hi, format, imgui.SliderFlagsNone) {
		f.SetValue(v)
	}
}
