// pkg/thruster/translator.go
package thruster

import (
	"github.com/opd-ai/go-sixdof/pkg/physics"
)

// Translator converts normalized thruster commands into world-space
// forces and torques on a body. It is stateless and safe to share.
type Translator struct{}

// NewTranslator returns a translator.
func NewTranslator() *Translator {
	return &Translator{}
}

// Apply converts the profile's current commands into accumulated forces
// and torques on body. Commands are computed in the vehicle's local frame
// and rotated into world space through the transform's orientation.
// Disabled profiles contribute nothing; torque requires 6DOF.
func (tl *Translator) Apply(profile *Profile, body *physics.Body, tr *physics.Transform) {
	if profile == nil || !profile.Enabled {
		return
	}

	efficiency := profile.Efficiency(body.Environment)

	localForce := physics.MulVec(profile.LinearCommand, profile.MaxLinearForce).Mul(efficiency)
	if localForce.Len() > 0 {
		body.AddForce(tr.Rotation.Rotate(localForce))
	}

	if !body.SixDOF {
		return
	}
	localTorque := physics.MulVec(profile.AngularCommand, profile.MaxAngularTorque).Mul(efficiency)
	if localTorque.Len() > 0 {
		body.AddTorque(tr.Rotation.Rotate(localTorque))
	}
}
