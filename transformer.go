package viewer

// ApplyInteraction resolves req against s and returns the new state.
//
// When the request changes scale or rotation and names a focal point, the
// content point under the focal point stays under it: the new offset is
// chosen so that point maps back to the same screen location under the
// target scale and rotation. A pan delta is added on top only when
// IncludePanDeltaWhenScaling is set. Otherwise a pan delta is added to the
// current offset directly.
//
// ApplyInteraction is pure and deterministic.
func ApplyInteraction(s State, req Request, alignOrigin, alignOffset Vec2) State {
	scale := s.Scale
	if req.Scale != nil {
		scale = *req.Scale
	}
	rotation := s.Rotation
	if req.Rotation != nil {
		rotation = *req.Rotation
	}

	offset := s.Offset
	switch {
	case req.FocalPoint != nil && req.changesScaleOrRotation(s):
		focal := *req.FocalPoint
		content := s.ScreenToContent(focal, alignOrigin, alignOffset)
		moved := content.Sub(alignOrigin).Rotate(rotation).Mul(scale)
		offset = focal.Sub(alignOffset).Sub(alignOrigin).Sub(moved)
		if req.IncludePanDeltaWhenScaling && req.PanDelta != nil {
			offset = offset.Add(*req.PanDelta)
		}
	case req.PanDelta != nil:
		offset = offset.Add(*req.PanDelta)
	}

	return State{Scale: scale, Offset: offset, Rotation: rotation}
}
