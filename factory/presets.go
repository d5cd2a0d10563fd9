package factory

// =============================================================================
// PRESET CATALOG
// =============================================================================

// DefaultCatalogJSON is the stock catalog loaded by the server when no
// catalog file is given.
const DefaultCatalogJSON = `{
  "ammo_types": [
    {"name": "LRM5",  "family": "LRM", "rack_size": 5,  "shots_per_ton": 24, "price_per_ton": "30000"},
    {"name": "LRM10", "family": "LRM", "rack_size": 10, "shots_per_ton": 12, "price_per_ton": "30000"},
    {"name": "LRM15", "family": "LRM", "rack_size": 15, "shots_per_ton": 8,  "price_per_ton": "30000"},
    {"name": "LRM20", "family": "LRM", "rack_size": 20, "shots_per_ton": 6,  "price_per_ton": "30000"},
    {"name": "SRM2",  "family": "SRM", "rack_size": 2,  "shots_per_ton": 50, "price_per_ton": "27000"},
    {"name": "SRM4",  "family": "SRM", "rack_size": 4,  "shots_per_ton": 25, "price_per_ton": "27000"},
    {"name": "SRM6",  "family": "SRM", "rack_size": 6,  "shots_per_ton": 15, "price_per_ton": "27000"},
    {"name": "AC5",   "family": "AC5",  "rack_size": 1, "shots_per_ton": 20, "price_per_ton": "4500"},
    {"name": "AC10",  "family": "AC10", "rack_size": 1, "shots_per_ton": 10, "price_per_ton": "6000"},
    {"name": "MG",    "family": "MG",   "rack_size": 1, "shots_per_ton": 200, "price_per_ton": "1000"}
  ],
  "armor_types": [
    {"name": "Standard",      "points_per_ton": 16, "price_per_ton": "10000"},
    {"name": "Ferro-Fibrous", "points_per_ton": 18, "price_per_ton": "20000"}
  ],
  "parts": [
    {"kind": "heat_sink", "spec": "single", "price": "2000", "common": true},
    {"kind": "heat_sink", "spec": "double", "price": "6000"},
    {"kind": "actuator",  "spec": "left_arm",  "price": "1000", "common": true},
    {"kind": "actuator",  "spec": "right_arm", "price": "1000", "common": true},
    {"kind": "jump_jet",  "spec": "medium", "price": "2400"},
    {"kind": "medium_laser", "spec": "", "price": "40000"}
  ]
}`
