package binning

// Resolution maps variable names to the non-uniform gen-level bin edges used
// for the RMS and bias plots. The edges widen where the spectra thin out so
// the high tails still collect enough events per bin.
var Resolution = map[string][]float64{
	"ttbar_mass": {
		300, 310, 320, 330, 340, 350, 360, 370, 380, 390,
		400, 410, 420, 430, 440, 450, 460, 470, 480, 490,
		500, 510, 520, 530, 540, 550, 560, 570, 580, 590,
		600, 610, 620, 630, 640, 650, 660, 670, 680, 690,
		700, 720, 740, 760, 780, 800, 820, 860, 900, 940,
		980, 1060, 1140, 1220, 1300,
	},
	"ttbar_pt": {
		0, 4, 8, 12, 16, 20, 24, 28, 32, 36,
		40, 44, 48, 52, 56, 60, 64, 68, 72, 76,
		80, 90, 100, 110, 120, 130, 140, 150, 160, 170,
		180, 190, 200, 220, 240, 260, 280, 300, 320, 340,
		360, 400,
	},
	"ttbar_p": {
		0, 4, 8, 12, 16, 20, 24, 28, 32, 36,
		40, 44, 48, 52, 56, 60, 64, 68, 72, 76,
		80, 90, 100, 110, 120, 130, 140, 150, 160, 170,
		180, 190, 200, 220, 240, 260, 280, 300, 320, 340,
		360, 400,
	},
	"ttbar_energy": {
		300, 320, 330, 340, 350, 365, 380, 395, 410, 425,
		440, 455, 470, 485, 500, 515, 530, 545, 560, 575,
		590, 605, 620, 635, 650, 665, 680, 695, 710, 725,
		740, 755, 770, 785, 800, 815, 830, 845, 860, 875,
		890, 905, 920, 935, 950, 970, 990, 1010, 1030, 1050,
		1070, 1090, 1110, 1130, 1150, 1170, 1190, 1210, 1250, 1290,
		1330, 1370, 1410, 1450, 1500, 1550, 1600, 1650, 1700,
	},
	"ttbar_pz": {
		-1500, -1400, -1320, -1240, -1160, -1080, -1040, -1000,
		-960, -920, -880, -840, -800, -760, -720, -680, -640,
		-600, -560, -520, -480, -440, -400, -360, -320, -280,
		-240, -200, -160, -120, -80, -40, 0, 40, 80, 120,
		160, 200, 240, 280, 320, 360, 400, 440, 480, 520,
		560, 600, 640, 680, 720, 760, 800, 840, 880, 920,
		960, 1000, 1040, 1080, 1160, 1240, 1320, 1400, 1500,
	},
	"t_pt": {
		0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100,
		110, 120, 130, 140, 150, 160, 170, 180, 190, 200, 210,
		220, 230, 240, 250, 260, 270, 280, 290, 300, 320,
		340, 360, 380, 400,
		440, 500,
	},
	"t_p": {
		0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100,
		110, 120, 130, 140, 150, 160, 170, 180, 190, 200, 210,
		220, 230, 240, 250, 260, 270, 280, 290, 300, 320,
		340, 360, 380, 400,
		440, 500,
	},
	"t_energy": {
		170, 180, 190, 200, 210, 220, 230, 240, 250,
		260, 270, 280, 290, 300, 310, 320, 330, 340,
		350, 360, 370, 380, 390, 400, 420, 440,
		460, 480, 500, 520, 540, 560, 580, 600, 620,
		640, 660, 680, 700, 720, 740, 760, 780, 800,
		840, 880, 920, 960,
		1000,
	},
	"t_pz": {
		-1500, -1400, -1320, -1240, -1160, -1120, -1080,
		-1040, -1000, -960, -920, -880, -840, -800, -760,
		-720, -680, -640, -600, -560, -520, -480, -440,
		-400, -360, -320, -280, -240, -200, -160, -120,
		-80, -40, 0, 40, 80, 120, 160, 200, 240, 280,
		320, 360, 400, 440, 480, 520, 560, 600, 640, 680,
		720, 760, 800, 840, 880, 920, 960, 1000, 1040, 1080,
		1120, 1160, 1240, 1320, 1400, 1500,
	},
	"boosted_t_pt": {
		0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100,
		110, 120, 130, 140, 150, 160, 170, 180, 190, 200, 210,
		220, 230, 240, 250, 260, 270, 280, 290, 300, 310, 320,
		330, 340, 350, 360, 370, 380, 390, 400, 410, 420, 430,
		440, 450, 460, 470, 480, 490, 500,
	},
	"boosted_t_p": {
		0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100,
	},
	"boosted_t_energy": {
		170, 180, 190, 200, 210, 220, 230, 240, 250, 260, 270,
		280, 290, 300, 310, 320, 330, 340, 350, 360, 370, 380,
		390, 400, 420, 440, 460, 480, 500, 520, 540, 560,
		580, 600, 620, 640, 660, 680, 700,
	},
	"boosted_t_pz": {
		-500, -450, -400, -350, -300, -280, -260, -240,
		-220, -200, -180, -160, -140, -120, -100, -80,
		-60, -40, -20, 0, 20, 40, 60, 80,
		100, 120, 140, 160, 180, 200, 220, 240,
		260, 280, 300, 350, 400, 450, 500,
	},
}

// ResolutionOrder lists the Resolution variables in plotting order.
var ResolutionOrder = []string{
	"ttbar_mass", "ttbar_pt", "ttbar_p", "ttbar_energy", "ttbar_pz",
	"t_pt", "t_p", "t_energy", "t_pz",
	"boosted_t_pt", "boosted_t_p", "boosted_t_energy", "boosted_t_pz",
}

// KinematicsOrder lists the Kinematics variables in plotting order: spin
// correlations first, then the systems from heaviest to lightest.
var KinematicsOrder = []string{
	"ll_cHel",
	"b1k", "b1r", "b1n", "b2k", "b2r", "b2n",
	"c_kk", "c_rr", "c_nn",
	"c_rk", "c_kr", "c_nr", "c_rn", "c_nk", "c_kn",
	"c_hel", "c_han",

	"ttbar_p", "ttbar_px", "ttbar_py", "ttbar_pz",
	"ttbar_energy", "ttbar_pt", "ttbar_eta", "ttbar_phi", "ttbar_mass",
	"ttbar_delta_eta", "ttbar_delta_phi", "ttbar_delta_r",

	"t_p", "t_px", "t_py", "t_pz",
	"t_energy", "t_pt", "t_eta", "t_phi", "t_mass",

	"tbar_p", "tbar_px", "tbar_py", "tbar_pz",
	"tbar_energy", "tbar_pt", "tbar_eta", "tbar_phi", "tbar_mass",

	"boosted_t_p", "boosted_t_px", "boosted_t_py", "boosted_t_pz",
	"boosted_t_energy", "boosted_t_pt", "boosted_t_eta", "boosted_t_phi", "boosted_t_mass",

	"boosted_tbar_p", "boosted_tbar_px", "boosted_tbar_py", "boosted_tbar_pz",
	"boosted_tbar_energy", "boosted_tbar_pt", "boosted_tbar_eta", "boosted_tbar_phi", "boosted_tbar_mass",
}
