package trainer

import "github.com/rcofre/generative-neural-models/model"

// Resume loads parameters saved by an earlier run into p when resume is set.
// A missing file is reported and leaves p unchanged; a file for a different
// number of units is an error.
func Resume(p *model.Params, resume *bool, srcmodel *string) error {
	if resume == nil || !*resume || srcmodel == nil || *srcmodel == "" {
		return nil
	}
	var loaded model.Params
	if err := loaded.ReadZlibFromFile(*srcmodel); err != nil {
		println(err.Error())
		return nil
	}
	if loaded.Units != p.Units {
		return model.ShapeError(p.Units, loaded.Units, *srcmodel)
	}
	copy(p.Vec, loaded.Vec)
	return nil
}
