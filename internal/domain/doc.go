// Package domain models air-quality monitoring stations, their pollutant
// predictions, and the two colour systems used to draw them on a map.
//
// # Input Data
//
// Station metadata comes from the EEA "AirQualityStation.csv" export. One physical
// station appears once per sampling point, so the same "Air Quality Station Name"
// repeats with slightly different metadata; the first row wins.
//
// Predictions are produced offline by the forecasting model, one CSV per station:
//
//	predictions_station_<station name>.csv
//
//	Date,Predicted_PM2.5,Predicted_PM10,Predicted_SO2,Predicted_O3
//	2024-01-01 00:00:00,7.91,14.2,1.3,52.7
//
// The station name is taken from the filename, not the file body. Each
// "Predicted_<pollutant>" column maps to a [Pollutant] through a fixed table;
// any other "Predicted_" column is rejected at load time.
//
// # Health Index
//
// Concentrations (µg/m³, CO in mg/m³) are classified on the six-tier European Air
// Quality Index. Each pollutant has six ascending thresholds t0..t5 and a value
// falls into the category equal to the number of thresholds it has reached:
//
//	v <  t0        Good            green
//	t0 <= v < t1   Fair            green
//	t1 <= v < t2   Moderate        yellow
//	t2 <= v < t3   Poor            red
//	t3 <= v < t4   Very poor       purple
//	v >= t4        Extremely poor  purple
//
// Intervals are lower-inclusive: a value exactly on a threshold belongs to the
// upper category. Repeated thresholds (CO, C6H6, Pb) produce empty intervals.
//
// # Continuous Gradient
//
// Animated time series use a separate colouring: each value is normalised against
// the pollutant's global min/max over every station in the run and coloured on a
// reversed RdYlGn ramp (green low, red high). This scale is relative to the data
// set and deliberately does not agree with the health index bands.
package domain
