// Package hcl_adapter loads pipeline definitions written in HCL into the
// format-agnostic config.Model.
//
// A pipeline file declares nodes, the connections between their ports and,
// optionally, one stage document to import at startup:
//
//	node "VideoNode" "clip" {
//	  config {
//	    video_path = "media/intro.mp4"
//	  }
//	}
//
//	connect {
//	  from = "clip.visual_out"
//	  to   = "fx.texture_in"
//	}
//
//	stage {
//	  path = "scenes/studio.hcl"
//	}
//
// Any number of files may be loaded together; their blocks are merged.
package hcl_adapter
