package geo

import (
	"errors"
	"math"
)

// WGS84 ellipsoid parameters.
const (
	wgs84A = 6378137.0         // semi-major axis, meters
	wgs84B = 6356752.314245    // semi-minor axis, meters
	wgs84F = 1 / 298.257223563 // flattening
)

const (
	maxIterations        = 100
	convergenceTolerance = 1e-12
)

// ErrNoConvergence indicates the iterative inverse solution did not converge
// within the iteration budget. Callers performing detection must treat this
// as "cannot determine" rather than aborting the tick.
var ErrNoConvergence = errors.New("vincenty inverse solution failed to converge")

// InverseResult holds the ellipsoidal distance and both bearings between two
// geographic positions.
type InverseResult struct {
	Distance       NauticalMiles
	InitialBearing Bearing
	FinalBearing   Bearing
}

// reducedLatitude is a latitude projected onto the auxiliary sphere, cached
// with its sine and cosine.
type reducedLatitude struct {
	u    float64
	sinU float64
	cosU float64
}

func reduceLatitude(latRad float64) reducedLatitude {
	u := math.Atan((1 - wgs84F) * math.Tan(latRad))
	return reducedLatitude{u: u, sinU: math.Sin(u), cosU: math.Cos(u)}
}

func normalizeRadians(rad float64) float64 {
	for rad > math.Pi {
		rad -= 2 * math.Pi
	}
	for rad < -math.Pi {
		rad += 2 * math.Pi
	}
	return rad
}

// Inverse solves the geodesic inverse problem on the WGS84 ellipsoid using
// Vincenty's formulae: the surface distance between p1 and p2 together with
// the initial and final bearings of the connecting geodesic.
func Inverse(p1, p2 GeoPosition) (InverseResult, error) {
	lat1 := p1.latitude * math.Pi / 180
	lat2 := p2.latitude * math.Pi / 180
	l := normalizeRadians((p2.longitude - p1.longitude) * math.Pi / 180)

	r1 := reduceLatitude(lat1)
	r2 := reduceLatitude(lat2)

	lambda := l
	for i := 0; i < maxIterations; i++ {
		sinLambda := math.Sin(lambda)
		cosLambda := math.Cos(lambda)

		term1 := r2.cosU * sinLambda
		term2 := r1.cosU*r2.sinU - r1.sinU*r2.cosU*cosLambda
		sinSigma := math.Sqrt(term1*term1 + term2*term2)
		if sinSigma == 0 {
			// Coincident points.
			return InverseResult{}, nil
		}
		cosSigma := r1.sinU*r2.sinU + r1.cosU*r2.cosU*cosLambda
		sigma := math.Atan2(sinSigma, cosSigma)

		sinAlpha := r1.cosU * r2.cosU * sinLambda / sinSigma
		cosSqAlpha := 1 - sinAlpha*sinAlpha

		// Equatorial line: cos²α = 0 forces cos(2σₘ) = 0.
		cos2SigmaM := 0.0
		if cosSqAlpha != 0 {
			cos2SigmaM = cosSigma - 2*r1.sinU*r2.sinU/cosSqAlpha
		}

		c := wgs84F / 16 * cosSqAlpha * (4 + wgs84F*(4-3*cosSqAlpha))
		lambdaNew := normalizeRadians(l + (1-c)*wgs84F*sinAlpha*
			(sigma+c*sinSigma*(cos2SigmaM+c*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM))))

		if math.Abs(lambdaNew-lambda) < convergenceTolerance {
			uSq := cosSqAlpha * (wgs84A*wgs84A - wgs84B*wgs84B) / (wgs84B * wgs84B)
			a := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
			b := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
			deltaSigma := b * sinSigma * (cos2SigmaM + b/4*
				(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
					b/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))

			meters := wgs84B * a * (sigma - deltaSigma)

			initial := math.Atan2(
				sinLambda*r2.cosU,
				r1.cosU*r2.sinU-r1.sinU*r2.cosU*cosLambda,
			)
			cosAlpha := math.Sqrt(cosSqAlpha)
			final := math.Atan2(
				r1.cosU*sinAlpha,
				-r1.sinU*cosSigma+r1.cosU*sinSigma*cosAlpha,
			)

			return InverseResult{
				Distance:       NauticalMiles{meters / MetersPerNauticalMile},
				InitialBearing: BearingFromRadians(initial),
				FinalBearing:   BearingFromRadians(final),
			}, nil
		}
		lambda = lambdaNew
	}

	return InverseResult{}, ErrNoConvergence
}

// SurfaceDistance returns the geodesic distance between two plane positions,
// interpreting them as geographic coordinates via the scale factor.
func SurfaceDistance(p1, p2 Position, scaleFactor float64) (NauticalMiles, error) {
	res, err := surfaceInverse(p1, p2, scaleFactor)
	if err != nil {
		return NauticalMiles{}, err
	}
	return res.Distance, nil
}

// SurfaceBearing returns the initial geodesic bearing from p1 to p2,
// interpreting both as geographic coordinates via the scale factor.
func SurfaceBearing(p1, p2 Position, scaleFactor float64) (Bearing, error) {
	res, err := surfaceInverse(p1, p2, scaleFactor)
	if err != nil {
		return Bearing{}, err
	}
	return res.InitialBearing, nil
}

func surfaceInverse(p1, p2 Position, scaleFactor float64) (InverseResult, error) {
	g1, err := GeoFromPosition(p1, scaleFactor)
	if err != nil {
		return InverseResult{}, err
	}
	g2, err := GeoFromPosition(p2, scaleFactor)
	if err != nil {
		return InverseResult{}, err
	}
	return Inverse(g1, g2)
}
