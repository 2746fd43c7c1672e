package common

// VariableOptions describe one CDS variable name this tool knows
// about. The catalogue upstream is far larger; unknown names are still
// accepted, this table only drives help output and warnings.
type VariableOptions struct {
	DisplayName string
	Unit        string
	Reanalysis  bool
	Projection  bool
}

var Variables map[string]VariableOptions = map[string]VariableOptions{
	"10m_u_component_of_wind":                    {DisplayName: "10m_u_component_of_wind", Unit: "m/s", Reanalysis: true},
	"10m_v_component_of_wind":                    {DisplayName: "10m_v_component_of_wind", Unit: "m/s", Reanalysis: true},
	"2m_dewpoint_temperature":                    {DisplayName: "2m_dewpoint_temperature", Unit: "K", Reanalysis: true},
	"2m_temperature":                             {DisplayName: "2m_temperature", Unit: "K", Reanalysis: true},
	"mean_sea_level_pressure":                    {DisplayName: "mean_sea_level_pressure", Unit: "Pa", Reanalysis: true},
	"total_precipitation":                        {DisplayName: "total_precipitation", Unit: "m", Reanalysis: true},
	"instantaneous_10m_wind_gust":                {DisplayName: "instantaneous_10m_wind_gust", Unit: "m/s", Reanalysis: true},
	"near_surface_air_temperature":               {DisplayName: "near_surface_air_temperature", Unit: "K", Projection: true},
	"daily_maximum_near_surface_air_temperature": {DisplayName: "daily_maximum_near_surface_air_temperature", Unit: "K", Projection: true},
	"daily_minimum_near_surface_air_temperature": {DisplayName: "daily_minimum_near_surface_air_temperature", Unit: "K", Projection: true},
	"precipitation":                              {DisplayName: "precipitation", Unit: "kg m-2 s-1", Projection: true},
	"near_surface_wind_speed":                    {DisplayName: "near_surface_wind_speed", Unit: "m/s", Projection: true},
	"sea_level_pressure":                         {DisplayName: "sea_level_pressure", Unit: "Pa", Projection: true},
}

func KnownVariable(name string) bool {
	_, ok := Variables[name]
	return ok
}
