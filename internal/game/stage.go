package game

import (
	"context"
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/splitview/internal/config"
	"github.com/Faultbox/splitview/internal/engine/camera"
	"github.com/Faultbox/splitview/internal/engine/debug"
	"github.com/Faultbox/splitview/internal/engine/lighting"
	"github.com/Faultbox/splitview/internal/engine/params"
	"github.com/Faultbox/splitview/internal/engine/pointer"
	"github.com/Faultbox/splitview/internal/engine/scene"
	"github.com/Faultbox/splitview/internal/engine/texture"
	"github.com/Faultbox/splitview/internal/engine/viewport"
	"github.com/Faultbox/splitview/internal/logger"
	"github.com/Faultbox/splitview/pkg/math"
)

// Scene dimensions.
const (
	floorSize  = 60
	wallHeight = 30
	cubeSize   = 4
	sphereSize = 3
)

// Stage is everything the loop and the frontends share.
type Stage struct {
	Scene *scene.Scene

	Main     *camera.Rig
	Overview *camera.Rig
	Orbits   []*camera.OrbitControls

	Helper     *debug.FrustumHelper
	Constraint *params.MinMax
	Panel      *params.Panel

	Views  []*View
	Router *pointer.Router
}

// BuildStage creates the scene, both cameras with their orbit controls, the
// frustum helper of the main camera, the near/far constraint with its panel,
// and one view per configured element.
func BuildStage(ctx context.Context, cfg *config.Config, surface *viewport.Surface, loader *texture.Loader) (*Stage, error) {
	s, err := buildScene(ctx, cfg.Scene, loader)
	if err != nil {
		return nil, err
	}

	st := &Stage{
		Scene:  s,
		Router: pointer.NewRouter(),
	}

	mainCam := newCamera(cfg.Cameras.Main)
	overviewCam := newCamera(cfg.Cameras.Overview)
	st.Helper = debug.NewFrustumHelper(mainCam)

	st.Constraint = params.NewMinMax(
		params.PointerProperty{P: &mainCam.Near},
		params.PointerProperty{P: &mainCam.Far},
		cfg.Constraint.Gap,
	)
	st.Panel = params.NewPanel(mainCam.UpdateProjectionMatrix)
	st.Panel.Add("fov", params.PointerProperty{P: &mainCam.FOV},
		cfg.Panel.FOV.Min, cfg.Panel.FOV.Max, cfg.Panel.FOV.Step)
	st.Panel.Add("min", st.Constraint.MinProperty(),
		cfg.Panel.Near.Min, cfg.Panel.Near.Max, cfg.Panel.Near.Step).Name("near")
	st.Panel.Add("max", st.Constraint.MaxProperty(),
		cfg.Panel.Far.Min, cfg.Panel.Far.Max, cfg.Panel.Far.Step).Name("far")

	// Each camera gets its own controls over the first view showing it.
	rigs := map[string]*camera.Rig{}
	cams := map[string]*camera.PerspectiveCamera{
		config.CameraMain:     mainCam,
		config.CameraOverview: overviewCam,
	}
	for _, vc := range cfg.Views {
		bg, err := config.ParseColor(vc.Background)
		if err != nil {
			return nil, fmt.Errorf("view %s: %w", vc.Name, err)
		}
		cam, ok := cams[vc.Camera]
		if !ok {
			return nil, fmt.Errorf("view %s: unknown camera %q", vc.Name, vc.Camera)
		}

		elem := viewport.NewLayoutElement(surface, Fraction(vc))
		rig, ok := rigs[vc.Camera]
		if !ok {
			orbit := camera.NewOrbitControls(cam, elem)
			st.Router.Bind(elem, orbit)
			st.Orbits = append(st.Orbits, orbit)
			rig = camera.NewRig(cam, orbit)
			rigs[vc.Camera] = rig
		}

		st.Views = append(st.Views, &View{
			Name:       vc.Name,
			Element:    elem,
			Rig:        rig,
			Background: bg,
		})
	}

	st.Main = rigs[config.CameraMain]
	if st.Main == nil {
		st.Main = camera.NewRig(mainCam, nil)
	}
	st.Overview = rigs[config.CameraOverview]
	if st.Overview == nil {
		st.Overview = camera.NewRig(overviewCam, nil)
	}

	logger.Info("stage built",
		zap.Int("objects", len(s.Objects)),
		zap.Int("lights", len(s.Lights)),
		zap.Int("views", len(st.Views)),
	)
	return st, nil
}

// Fraction returns the view's placement as fractions of the surface.
func Fraction(vc config.ViewConfig) viewport.Rect {
	return viewport.Rect{Left: vc.Left, Top: vc.Top, Width: vc.Width, Height: vc.Height}
}

// Layout converts a reloaded config into view placements for the loop.
func Layout(cfg *config.Config) ([]ViewLayout, error) {
	out := make([]ViewLayout, 0, len(cfg.Views))
	for _, vc := range cfg.Views {
		bg, err := config.ParseColor(vc.Background)
		if err != nil {
			return nil, fmt.Errorf("view %s: %w", vc.Name, err)
		}
		out = append(out, ViewLayout{Name: vc.Name, Fraction: Fraction(vc), Background: bg})
	}
	return out, nil
}

func newCamera(cc config.CameraConfig) *camera.PerspectiveCamera {
	cam := camera.NewPerspectiveCamera(cc.FOV, 2, cc.Near, cc.Far)
	cam.SetPosition(cc.Position[0], cc.Position[1], cc.Position[2])
	cam.LookAt(math.V3(cc.Target[0], cc.Target[1], cc.Target[2]))
	return cam
}

func buildScene(ctx context.Context, sc config.SceneConfig, loader *texture.Loader) (*scene.Scene, error) {
	cubeColor, err := config.ParseColor(sc.CubeColor)
	if err != nil {
		return nil, fmt.Errorf("cube: %w", err)
	}
	sphereColor, err := config.ParseColor(sc.SphereColor)
	if err != nil {
		return nil, fmt.Errorf("sphere: %w", err)
	}

	white := [3]float32{1, 1, 1}
	checker := loader.Load(ctx, sc.Texture)
	s := scene.New()

	s.Add(&scene.Object{
		Name: "floor",
		Mesh: scene.NewPlane(floorSize, floorSize),
		Material: scene.Material{
			Color:       white,
			Texture:     checker,
			Repeat:      [2]float32{floorSize / sc.TileSize, floorSize / sc.TileSize},
			DoubleSided: true,
		},
		Rotation: math.V3(-math32.Pi/2, 0, 0),
	})

	wallMesh := scene.NewPlane(floorSize, wallHeight)
	wallMat := scene.Material{
		Color:       white,
		Texture:     checker,
		Repeat:      [2]float32{floorSize / sc.TileSize, wallHeight / sc.TileSize},
		DoubleSided: true,
	}
	s.Add(&scene.Object{Name: "wall-back", Mesh: wallMesh, Material: wallMat,
		Position: math.V3(0, floorSize/4, -floorSize/2)})
	s.Add(&scene.Object{Name: "wall-left", Mesh: wallMesh, Material: wallMat,
		Position: math.V3(-floorSize/2, floorSize/4, 0), Rotation: math.V3(0, math32.Pi/2, 0)})
	s.Add(&scene.Object{Name: "wall-right", Mesh: wallMesh, Material: wallMat,
		Position: math.V3(floorSize/2, floorSize/4, 0), Rotation: math.V3(0, -math32.Pi/2, 0)})

	s.Add(&scene.Object{
		Name:     "cube",
		Mesh:     scene.NewBox(cubeSize, cubeSize, cubeSize),
		Material: scene.Material{Color: cubeColor},
		Position: math.V3(cubeSize+1, cubeSize/2, 0),
	})
	s.Add(&scene.Object{
		Name:     "sphere",
		Mesh:     scene.NewSphere(sphereSize, 32, 16),
		Material: scene.Material{Color: sphereColor},
		Position: math.V3(-sphereSize-1, sphereSize+2, 0),
	})

	s.AddLight(lighting.NewDirectional(white, 1, math.V3(0, 10, 0), math.V3(-5, 0, 0)))
	s.AddLight(lighting.NewDirectional(white, 1, math.V3(0, -10, 0), math.V3(5, 0, 0)))
	s.AddLight(lighting.NewDirectional(white, 1, math.V3(0, 0, 10), math.V3(5, 0, 0)))

	return s, nil
}
