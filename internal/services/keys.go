package services

// Persistent storage keys.
const (
	KeyRespawnList     = "respawn-list"
	KeySelectedRespawn = "selected-respawn-idx"
	KeyCoordPrecision  = "coord-pre"
	KeyCoordExponent   = "coord-exp"
)

// Page URL query parameters.
const (
	ParamLat         = "lat"
	ParamLon         = "lon"
	ParamRespawnName = "respawnName"
	ParamRespawnLat  = "respawnLat"
	ParamRespawnLon  = "respawnLon"
)
