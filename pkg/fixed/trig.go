package fixed

import "fmt"

// Taylor coefficients for sin: reciprocals of 3!, 5!, 7! in 16.16.
const (
	inv6    Fixed = 10923 // 1/6
	inv120  Fixed = 546   // 1/120
	inv5040 Fixed = 13    // 1/5040
)

// Sin returns the sine of x (radians, 16.16) using a 7th-order odd Taylor
// polynomial. The argument is first folded into [-π, π]. Accuracy is a few
// ten-thousandths near zero and degrades to about 0.075 at the ±π fold
// boundary, matching the original hardware routine.
func (x Fixed) Sin() Fixed {
	for x > Pi {
		x -= TwoPi
	}
	for x < -Pi {
		x += TwoPi
	}
	x2 := x.Mul(x)
	x3 := x2.Mul(x)
	x5 := x3.Mul(x2)
	x7 := x5.Mul(x2)
	return x - x3.Mul(inv6) + x5.Mul(inv120) - x7.Mul(inv5040)
}

// Cos returns the cosine of x (radians, 16.16), computed as Sin(x + π/2).
func (x Fixed) Cos() Fixed {
	return (x + HalfPi).Sin()
}

// WrapDegrees folds an arbitrary integer angle into [0, 360).
func WrapDegrees(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Radians converts a whole degree in [0, 360] to 16.16 radians via table
// lookup. Out-of-range input is a programmer error and panics; callers with
// unbounded angles go through WrapDegrees first.
func Radians(deg int) Fixed {
	if deg < 0 || deg > 360 {
		panic(fmt.Sprintf("fixed: degree %d outside [0, 360]", deg))
	}
	return degRadTable[deg]
}

// degRadTable holds round(deg * π/180 * 65536) for deg in [0, 360].
var degRadTable = [361]Fixed{
	0, 1144, 2288, 3431, 4575, 5719, 6863, 8007, 9151, 10294,
	11438, 12582, 13726, 14870, 16013, 17157, 18301, 19445, 20589, 21733,
	22876, 24020, 25164, 26308, 27452, 28595, 29739, 30883, 32027, 33171,
	34315, 35458, 36602, 37746, 38890, 40034, 41177, 42321, 43465, 44609,
	45753, 46897, 48040, 49184, 50328, 51472, 52616, 53759, 54903, 56047,
	57191, 58335, 59479, 60622, 61766, 62910, 64054, 65198, 66342, 67485,
	68629, 69773, 70917, 72061, 73204, 74348, 75492, 76636, 77780, 78924,
	80067, 81211, 82355, 83499, 84643, 85786, 86930, 88074, 89218, 90362,
	91506, 92649, 93793, 94937, 96081, 97225, 98368, 99512, 100656, 101800,
	102944, 104088, 105231, 106375, 107519, 108663, 109807, 110950, 112094, 113238,
	114382, 115526, 116670, 117813, 118957, 120101, 121245, 122389, 123532, 124676,
	125820, 126964, 128108, 129252, 130395, 131539, 132683, 133827, 134971, 136114,
	137258, 138402, 139546, 140690, 141834, 142977, 144121, 145265, 146409, 147553,
	148696, 149840, 150984, 152128, 153272, 154416, 155559, 156703, 157847, 158991,
	160135, 161278, 162422, 163566, 164710, 165854, 166998, 168141, 169285, 170429,
	171573, 172717, 173860, 175004, 176148, 177292, 178436, 179580, 180723, 181867,
	183011, 184155, 185299, 186442, 187586, 188730, 189874, 191018, 192162, 193305,
	194449, 195593, 196737, 197881, 199025, 200168, 201312, 202456, 203600, 204744,
	205887, 207031, 208175, 209319, 210463, 211607, 212750, 213894, 215038, 216182,
	217326, 218469, 219613, 220757, 221901, 223045, 224189, 225332, 226476, 227620,
	228764, 229908, 231051, 232195, 233339, 234483, 235627, 236771, 237914, 239058,
	240202, 241346, 242490, 243633, 244777, 245921, 247065, 248209, 249353, 250496,
	251640, 252784, 253928, 255072, 256215, 257359, 258503, 259647, 260791, 261935,
	263078, 264222, 265366, 266510, 267654, 268797, 269941, 271085, 272229, 273373,
	274517, 275660, 276804, 277948, 279092, 280236, 281379, 282523, 283667, 284811,
	285955, 287099, 288242, 289386, 290530, 291674, 292818, 293961, 295105, 296249,
	297393, 298537, 299681, 300824, 301968, 303112, 304256, 305400, 306543, 307687,
	308831, 309975, 311119, 312263, 313406, 314550, 315694, 316838, 317982, 319125,
	320269, 321413, 322557, 323701, 324845, 325988, 327132, 328276, 329420, 330564,
	331708, 332851, 333995, 335139, 336283, 337427, 338570, 339714, 340858, 342002,
	343146, 344290, 345433, 346577, 347721, 348865, 350009, 351152, 352296, 353440,
	354584, 355728, 356872, 358015, 359159, 360303, 361447, 362591, 363734, 364878,
	366022, 367166, 368310, 369454, 370597, 371741, 372885, 374029, 375173, 376316,
	377460, 378604, 379748, 380892, 382036, 383179, 384323, 385467, 386611, 387755,
	388898, 390042, 391186, 392330, 393474, 394618, 395761, 396905, 398049, 399193,
	400337, 401480, 402624, 403768, 404912, 406056, 407200, 408343, 409487, 410631,
	411775,
}
