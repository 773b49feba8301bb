// Package domain models infrared satellite detection of organized cloud
// clusters.
//
// # Data Conventions
//
// Frames use the inverted-intensity IR convention: a bright pixel is a cold
// cloud top, the proxy for deep convection. Every frame and mask is a fixed
// 256×256 single-channel float field with values in [0,1]; a mask always
// shares its source frame's dimensions.
//
// # Metric Reduction
//
// A mask pixel counts as active cluster above [ActivationThreshold] (0.5,
// i.e. 128 in the 8-bit mask encoding). From the active set:
//
//	coverage percent = active / total × 100
//	cluster area km² = active × AreaPerPixelKm2   (linear in active count)
//	temperature °C   = -40 - 50 × mean masked intensity
//	confidence %     = mean decisiveness 2|m-0.5| × 100
//
// Temperature is calibrated so typical inputs land in [-90,-40]°C and is
// strictly monotonic: brighter masked regions always estimate colder.
//
// # Classification
//
// Risk tier and event class come from two independent first-match-wins
// constant tables (see [Classify]). Their boundary operators differ: the
// tier table uses strict < -70°C / > 2000 km² for High with an inclusive
// 1000–2000 km² Moderate band, while the event table breaks at 1500, 500,
// and 200 km² with its own temperature cutoffs. Both carry the operational
// thresholds verbatim, so the two never collapse into one lookup.
package domain
