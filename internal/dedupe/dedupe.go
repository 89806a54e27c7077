// Package dedupe provides shared singleflight groups used to deduplicate
// concurrent reads of the same battle or trainer profile. Only one load runs
// per key while other callers wait for its result.
package dedupe

import "golang.org/x/sync/singleflight"

// BattleGroup deduplicates battle record loads keyed by BattleKey.
var BattleGroup singleflight.Group

// ProfileGroup deduplicates trainer profile loads keyed by ProfileKey.
var ProfileGroup singleflight.Group

func BattleKey(id string) string { return "battle:" + id }

func ProfileKey(trainerID string) string { return "trainer:" + trainerID }
