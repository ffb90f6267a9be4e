package app

import (
	"github.com/specialistvlad/stagegrid/internal/registry"
	"github.com/specialistvlad/stagegrid/modules/audio"
	"github.com/specialistvlad/stagegrid/modules/camera"
	"github.com/specialistvlad/stagegrid/modules/effect"
	"github.com/specialistvlad/stagegrid/modules/env_vars"
	"github.com/specialistvlad/stagegrid/modules/print"
	"github.com/specialistvlad/stagegrid/modules/remotecontrol"
	"github.com/specialistvlad/stagegrid/modules/shader"
	"github.com/specialistvlad/stagegrid/modules/stitch"
	"github.com/specialistvlad/stagegrid/modules/threedmodel"
	"github.com/specialistvlad/stagegrid/modules/video"
)

// coreModules is the definitive list of all node modules that are compiled
// into the stagegrid binary.
var coreModules = []registry.Module{
	&camera.Module{},
	&video.Module{},
	&audio.Module{},
	&stitch.Module{},
	&shader.Module{},
	&effect.Module{},
	&threedmodel.Module{},
	&env_vars.Module{},
	&remotecontrol.Module{},
	&print.Module{},
}
