package level

import (
	"image/color"
	"time"

	"github.com/milk9111/penguin/controller"
	"github.com/milk9111/penguin/prefabs"
	"github.com/milk9111/penguin/sprite"
)

// PlayerConfig maps the player prefab onto controller tuning. Unset fields
// keep the controller defaults.
func PlayerConfig(spec *prefabs.PlayerSpec) controller.PlayerConfig {
	if spec == nil {
		return controller.DefaultPlayerConfig()
	}
	d := controller.DefaultPlayerConfig()
	return controller.PlayerConfig{
		MoveSpeed:      spec.MoveSpeed,
		JumpSpeed:      spec.JumpSpeed,
		BounceSpeed:    spec.BounceSpeed,
		KnockbackSpeed: spec.KnockbackSpeed,
		HazardDamage:   spec.HazardDamage,
		EnemyDamage:    spec.EnemyDamage,
		MaxHealth:      spec.MaxHealth,
		PickupHealth:   spec.PickupHealth,
		FlashDuration:  prefabs.Millis(spec.Flash.DurationMS, d.FlashDuration),
		FlashFrom:      spec.Flash.From.Or(d.FlashFrom),
		HazardFlash:    spec.Flash.Hazard.Or(d.HazardFlash),
		EnemyFlash:     spec.Flash.Enemy.Or(d.EnemyFlash),
	}
}

func EnemyConfig(spec *prefabs.SnowmanSpec) controller.EnemyConfig {
	if spec == nil {
		return controller.DefaultEnemyConfig()
	}
	d := controller.DefaultEnemyConfig()
	return controller.EnemyConfig{
		MoveSpeed:    spec.MoveSpeed,
		Dwell:        prefabs.Millis(spec.DwellMS, d.Dwell),
		FadeDuration: prefabs.Millis(spec.FadeMS, d.FadeDuration),
	}
}

// Animations turns a prefab animation block into sprite animations.
func Animations(spec prefabs.AnimationSpec, fallback color.Color) []sprite.Animation {
	out := make([]sprite.Animation, 0, len(spec.Defs))
	for name, def := range spec.Defs {
		fps := def.FPS
		if fps <= 0 {
			fps = spec.FPS
		}
		out = append(out, sprite.Animation{
			Name:   name,
			Frames: def.Frames,
			FPS:    fps,
			Loop:   def.Looping(),
			Color:  def.Color.Or(fallback),
		})
	}
	return out
}

// RestartDelay is how long a defeated player stays on screen.
func RestartDelay(hud *prefabs.HUDSpec) time.Duration {
	if hud == nil {
		return 2 * time.Second
	}
	return prefabs.Millis(hud.RestartMS, 2*time.Second)
}
