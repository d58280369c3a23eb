// pkg/control/assist.go
package control

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-sixdof/pkg/physics"
)

const (
	// assistDeadZone gates per-axis damping so assist never fights a
	// deliberate rotation command.
	assistDeadZone = 0.15

	// bankingYawThreshold marks a deliberate banking turn; roll damping
	// and roll leveling are suppressed while it holds.
	bankingYawThreshold = 0.1

	// maxAssistCorrection bounds the total assist contribution per axis.
	maxAssistCorrection = 0.3

	noInputThreshold = 0.01
)

// ApplyAssist augments an angular command with stability corrections:
// angular-velocity damping on uncommanded axes, and auto-leveling when
// the vehicle is coasting with no input. Strength scales all
// corrections; zero strength returns the command unchanged.
func ApplyAssist(angular, linear mgl64.Vec3, body *physics.Body, tr *physics.Transform, strength float64) mgl64.Vec3 {
	if strength <= 0 {
		return angular
	}

	noInput := linear.Len() < noInputThreshold && angular.Len() < noInputThreshold
	banking := math.Abs(angular.Y()) > bankingYawThreshold

	var correction mgl64.Vec3
	if math.Abs(angular.X()) < assistDeadZone {
		correction[0] = -body.AngularVelocity.X() * strength * 0.5
	}
	if math.Abs(angular.Y()) < assistDeadZone {
		correction[1] = -body.AngularVelocity.Y() * strength * 0.5
	}
	// Roll damping nearly releases during a bank so the turn can develop.
	if banking {
		correction[2] = -body.AngularVelocity.Z() * strength * 0.05
	} else if math.Abs(angular.Z()) < assistDeadZone {
		correction[2] = -body.AngularVelocity.Z() * strength * 0.4
	}

	if noInput && !banking {
		pitchError, rollError := levelErrors(tr)
		correction[0] -= pitchError * 0.5
		correction[2] -= rollError * 0.5
	} else if banking {
		// During a bank only pitch is gently corrected; roll is the turn.
		pitchError, _ := levelErrors(tr)
		correction[0] -= pitchError * 0.3
	}

	correction = physics.ClampVec(correction, -maxAssistCorrection, maxAssistCorrection)
	return angular.Add(correction)
}

// levelErrors measures deviation from level flight: pitch as the climb
// angle of the forward vector, roll as the tilt of the up vector.
func levelErrors(tr *physics.Transform) (pitch, roll float64) {
	forward := tr.Forward()
	up := tr.Up()

	horizontal := math.Sqrt(forward.X()*forward.X() + forward.Z()*forward.Z())
	pitch = math.Atan2(forward.Y(), horizontal)
	roll = math.Atan2(up.X(), up.Y())
	return pitch, roll
}
