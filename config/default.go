package config

// Default returns a conservative, internally-consistent GameConfig for tests
// and for documenting the contract shape. A real deployment reads its own
// bytes (KDL/TOML, out of scope for this repo) into an equivalent struct.
func Default() GameConfig {
	return GameConfig{
		SchemaVersion: 1,
		Economy: EconomyConfig{
			PopGrowthRate: 0.05,
			RawIndexByRating: map[string]float64{
				"VeryPoor": 0.5, "Poor": 0.75, "Average": 1.0, "Rich": 1.5, "VeryRich": 2.0,
			},
			TaxBands:          []float64{0.25},
			BlockadeGCOFactor: 0.4,
			ELModPerLevel:     0.05,
			CSTModPerLevel:    0.10,
			ProdGrowthRate:    0,
		},
		Construction: ConstructionConfig{
			ShipyardRequiredForStarbase: true,
			SpaceportCostMultiplier:     2.0,
			ShipyardCostMultiplier:      1.0,
			FighterCostMultiplier:       1.0,
			CSTDockBonusPerLevel:        0.1,
		},
		Ships: defaultShips(),
		Facilities: map[FacilityClass]FacilitySpec{
			FacilitySpaceport: {Class: FacilitySpaceport, AS: 0, DS: 0, Cost: 125, Upkeep: 5, Docks: 2, MinCST: 1},
			FacilityShipyard:  {Class: FacilityShipyard, AS: 0, DS: 0, Cost: 250, Upkeep: 8, Docks: 3, MinCST: 3},
			FacilityDrydock:   {Class: FacilityDrydock, AS: 0, DS: 0, Cost: 180, Upkeep: 6, Docks: 2, MinCST: 2},
			FacilityStarbase:  {Class: FacilityStarbase, AS: 10, DS: 40, Cost: 300, Upkeep: 10, Docks: 0, MinCST: 4},
		},
		GroundUnits: map[GroundUnitClass]GroundUnitSpec{
			GroundBattery:         {Class: GroundBattery, BuildCost: 25, Upkeep: 1},
			GroundArmy:            {Class: GroundArmy, BuildCost: 20, Upkeep: 2},
			GroundMarine:          {Class: GroundMarine, BuildCost: 15, Upkeep: 1},
			GroundPlanetaryShield: {Class: GroundPlanetaryShield, BuildCost: 25, Upkeep: 2},
		},
		Combat: CombatConfig{
			CERBands: []CERBand{
				{MinRoll: 0, Multiplier: 0.25},
				{MinRoll: 4, Multiplier: 0.50},
				{MinRoll: 8, Multiplier: 0.75},
				{MinRoll: 11, Multiplier: 1.00},
			},
			RetreatThreshold:     1.5,
			DesperationTrigger:   5,
			MaxRounds:            20,
			DesperationCERBonus:  2,
			ShieldBlockBySLD:     map[int]float64{0: 0, 1: 0.05, 2: 0.10, 3: 0.15, 4: 0.20, 5: 0.25},
			TargetingWeights:     TargetingWeights{Raider: 1.2, Capital: 1.0, Escort: 0.8, Fighter: 0.6, Starbase: 1.5},
			CriticalHitThreshold: 12,
			AmbushCERBonus:       3,
			SurpriseCERBonus:     2,
		},
		Tech: TechConfig{
			MaxLevel:     10,
			FieldUnlocks: map[string]map[int][]ShipClass{},
		},
		Prestige: PrestigeConfig{
			ShortfallPenaltyByConsecutive: []int{-8, -11, -14, -17},
			BlockadePerColony:             -2,
			PactViolationBase:             -20,
			PactViolationPerRepeat:        -10,
		},
		Diplomacy: DiplomacyConfig{
			DishonoredTurns:        3,
			IsolationTurns:         5,
			PactReinstatementTurns: 5,
			ViolationWindowTurns:   10,
		},
		Espionage: EspionageConfig{
			Ops:                    defaultEspionageOps(),
			MaxOpsPerTargetPerTurn: 3,
			MeshBonusPerExtraScout: 1,
			MeshBonusCap:           3,
		},
		Military: MilitaryConfig{
			CapitalSquadronMin:       10,
			CapitalSquadronIUDivisor: 100,
			TotalSquadronMin:         20,
			TotalSquadronIUDivisor:   50,
			MapSizeMultiplier:        1.0,
			GraceTurns:               2,
		},
		Gameplay: GameplayConfig{
			DefensiveCollapseConsecutiveNegativePrestige: 3,
			AutopilotMissedSubmissions:                   3,
			SpaceGuildMaxConcurrentTransfers:             5,
		},
	}
}

func defaultShips() map[ShipClass]ShipSpec {
	mk := func(class ShipClass, role ShipRole, as, ds, hp, sr, mr, cc, cr, minCST, cost, maint, carry int) ShipSpec {
		return ShipSpec{
			Class: class, Role: role,
			AS: map[int]int{1: as}, DS: map[int]int{1: ds},
			HP: hp, SR: sr, MR: mr, SO: 1,
			CommandCost: cc, CommandRating: cr, MinCST: minCST,
			BuildCost: cost, Maintenance: maint, CarryLimit: carry,
		}
	}
	return map[ShipClass]ShipSpec{
		ShipScout:         mk(ShipScout, RoleIntel, 0, 2, 10, 6, 3, 1, 0, 1, 15, 1, 0),
		ShipCorvette:      mk(ShipCorvette, RoleCombat, 3, 4, 20, 2, 2, 1, 0, 1, 25, 1, 0),
		ShipFrigate:       mk(ShipFrigate, RoleCombat, 5, 6, 30, 2, 2, 2, 0, 2, 40, 2, 0),
		ShipDestroyer:     mk(ShipDestroyer, RoleCombat, 8, 10, 45, 2, 2, 3, 0, 2, 65, 2, 0),
		ShipLightCruiser:  mk(ShipLightCruiser, RoleCombat, 12, 14, 65, 2, 2, 4, 8, 3, 95, 4, 0),
		ShipCruiser:       mk(ShipCruiser, RoleCombat, 18, 20, 90, 2, 2, 6, 12, 4, 140, 6, 0),
		ShipBattlecruiser: mk(ShipBattlecruiser, RoleCombat, 24, 28, 120, 2, 1, 8, 16, 5, 200, 8, 0),
		ShipBattleship:    mk(ShipBattleship, RoleCombat, 32, 38, 160, 1, 1, 10, 24, 6, 280, 11, 0),
		ShipDreadnought:   mk(ShipDreadnought, RoleCombat, 45, 55, 220, 1, 1, 14, 36, 8, 400, 16, 0),
		ShipCarrier:       mk(ShipCarrier, RoleAuxiliary, 4, 16, 100, 2, 1, 8, 20, 5, 220, 9, 0),
		ShipFighter:       mk(ShipFighter, RoleFighter, 4, 2, 8, 1, 1, 1, 0, 2, 10, 0, 0),
		ShipETAC:          mk(ShipETAC, RoleExpansion, 0, 4, 40, 1, 2, 2, 0, 1, 60, 2, 5000),
		ShipFreighter:     mk(ShipFreighter, RoleAuxiliary, 0, 3, 35, 1, 2, 2, 0, 1, 45, 1, 2000),
		ShipTanker:        mk(ShipTanker, RoleAuxiliary, 0, 3, 35, 1, 2, 2, 0, 1, 45, 1, 0),
		ShipMinelayer:     mk(ShipMinelayer, RoleAuxiliary, 2, 4, 30, 2, 1, 3, 0, 3, 70, 2, 0),
		ShipRaider:        mk(ShipRaider, RoleCombat, 10, 6, 35, 3, 3, 2, 0, 3, 75, 2, 0),
		ShipCommandShip:   mk(ShipCommandShip, RoleCombat, 14, 18, 100, 3, 2, 6, 48, 6, 260, 10, 0),
	}
}

func defaultEspionageOps() map[EspionageOperation]EspionageOpSpec {
	mk := func(op EspionageOperation, ebp, cip, det int, minMag, maxMag float64, dur int) EspionageOpSpec {
		return EspionageOpSpec{
			Op: op, EBPCost: ebp, CIPCost: cip, BaseDetection: det,
			PrestigeDeltaAttackerSuccess: 2, PrestigeDeltaDefenderSuccess: -2,
			PrestigeDeltaAttackerDetected: -5,
			EffectMagnitudeMin:            minMag, EffectMagnitudeMax: maxMag, DurationTurns: dur,
		}
	}
	return map[EspionageOperation]EspionageOpSpec{
		OpTechTheft:            mk(OpTechTheft, 30, 0, 40, 0.1, 0.3, 0),
		OpSabotageLow:          mk(OpSabotageLow, 20, 0, 35, 0.05, 0.15, 0),
		OpSabotageHigh:         mk(OpSabotageHigh, 50, 0, 55, 0.15, 0.35, 0),
		OpAssassination:        mk(OpAssassination, 60, 0, 65, 1, 1, 0),
		OpCyberAttack:          mk(OpCyberAttack, 40, 0, 50, 0.1, 0.25, 0),
		OpEconomicManipulation: mk(OpEconomicManipulation, 35, 0, 45, 0.1, 0.2, 0),
		OpPsyops:               mk(OpPsyops, 25, 0, 40, 0.05, 0.15, 0),
		OpCounterIntelSweep:    mk(OpCounterIntelSweep, 0, 20, 0, 0, 0, 0),
		OpIntelligenceTheft:    mk(OpIntelligenceTheft, 30, 0, 45, 0, 0, 0),
		OpPlantDisinformation:  mk(OpPlantDisinformation, 25, 0, 40, 0.2, 0.5, 3),
	}
}
