package templates

import "github.com/frankbeauty/salon-bot/internal/session"

// bank is the template data: {language: {key: [variants]}}. Copy mirrors the
// tone customers actually use on each register; sheng and swenglish are
// code-mixed by design.
var bank = map[session.Language]map[string][]string{
	session.LanguageEnglish: {
		KeyGreeting: {
			"Hello! Welcome to Frank Beauty Spot! 💇‍♀\n\nHow may I assist you today? 😊\n\nYou can:\n• Ask about our services\n• Book an appointment\n• Check our prices\n• Ask for our location",
			"Hi there! Welcome to Frank Beauty Spot 💅\n\nI can help you view our services, check prices, or book an appointment. What would you like to do?",
		},
		KeyMainMenu: {
			"I can help you with:\n• Our services and prices\n• Booking an appointment\n• Our location and hours\n\nWhat would you like to do?",
		},
		KeyServicesList: {
			"💇‍♀ *Our Services & Prices* 💅\n\n{menu}\n\n*Which service interests you?* 😊\n\n*Or would you like to book an appointment?*",
		},
		KeyPriceList: {
			"💰 *Our Prices*\n\n{prices}\n\nA KES {deposit} deposit secures your slot. Would you like to book?",
		},
		KeyLocation: {
			"📍 We're at {location}.\n\n{hours}\n\nSecure parking is available for our customers.",
		},
		KeyThanks: {
			"You're most welcome! See you at the salon! 😊",
			"Anytime! We look forward to seeing you! 💅",
		},
		KeyAskService: {
			"Great! Let's book your appointment! 💅\n\n*Which service would you like?*\n{menu}\n\n*Please tell me the service you want.*",
		},
		KeyAskServiceAgain: {
			"Sorry, I didn't catch that. *Which of these services would you like?*\n{menu}",
		},
		KeyAskDate: {
			"Excellent choice! {service} it is! 📅\n\n*When would you like to come in?*\n• Today\n• Tomorrow\n• A weekday (e.g. Friday)",
		},
		KeyAskDateDirect: {
			"Nice pick - *{service}*! 📅\n\n*When would you like to come in?*\n• Today\n• Tomorrow\n• A weekday (e.g. Friday)",
		},
		KeyAskDateAgain: {
			"I couldn't read that date. For your {service}, please say *today*, *tomorrow*, or a weekday name.",
		},
		KeyAskTime: {
			"*What time works for you?* ⏰\n\n• Morning (9 AM - 12 PM)\n• Afternoon (2 PM - 5 PM)\n• Evening (5 PM - 7 PM)\n• A specific time (e.g. 2pm)",
		},
		KeyAskTimeAgain: {
			"I couldn't read that time. Please say *morning*, *afternoon*, *evening*, or a time like *2pm*.",
		},
		KeyAskName: {
			"Perfect! 😊\n\n*Please tell me your name for the {service} appointment:*",
		},
		KeyAskNameAgain: {
			"Sorry, I need a name for the booking. *What name should I put down?*",
		},
		KeyAskPhone: {
			"Almost done! 📱\n\n*Please share your phone number:*\n\n📞 *Format:* 07XXXXXXXX or 2547XXXXXXXX",
		},
		KeyAskPhoneAgain: {
			"❌ *Invalid phone number format!* Please use this format: *0712345678* or *254712345678*",
		},
		KeyConfirmSummary: {
			"📋 *Please confirm your appointment:*\n\n• *Service:* {service}\n• *Date:* {date}\n• *Time:* {time}\n• *Name:* {name}\n• *Phone:* {phone}\n\nReply *yes* to confirm or *no* to cancel.",
		},
		KeyPaymentInfo: {
			"💳 *How to pay*\n\nWe accept M-Pesa (Till: 123456), cash, and debit/credit cards.\n\nA KES {deposit} M-Pesa deposit secures your booking - the rest is payable at the salon.",
		},
		KeyPaymentOptions: {
			"💳 *Payment for {service} - KES {amount}*\n\n*Select payment method:*\n🔹 *M-Pesa STK Push* - Automatic & convenient (send your phone number)\n🔹 *M-Pesa Manual* - Manual payment\n🔹 *Cash at Salon* - Pay upon arrival\n\n*Which option would you prefer?*",
		},
		KeyPaymentPhone: {
			"📱 *Please provide your phone number*\n\n*Amount:* KES {amount}\n*Service:* {service}\n\n📞 *Format:* 07XXXXXXXX or 2547XXXXXXXX\n\nI'll send an M-Pesa STK push directly to your phone! ✅",
		},
		KeyPaymentSent: {
			"✅ *STK push initiated!*\n\nCheck your phone for the KES {amount} M-Pesa prompt. Please approve! ✅\n\n*Once confirmed, your appointment will be secured!* 🎉",
		},
		KeyPaymentFailed: {
			"❌ *Payment failed!* M-Pesa was declined.\n\nPlease try again later or pay cash at the salon.",
		},
		KeyPaymentConfirmed: {
			"🎉 *Payment received!* Receipt: {receipt}\n\nYour appointment is confirmed. See you soon!",
		},
		KeyManualMpesa: {
			"📋 *Manual M-Pesa for {service}*\n\n1. Go to M-Pesa\n2. Select \"Lipa Na M-Pesa\"\n3. Choose \"Pay Bill\"\n4. *Business No:* {shortcode}\n5. *Account No:* {account}\n6. *Amount:* KES {amount}\n\nForward the confirmation to me and we'll confirm your booking! 📸",
		},
		KeyCashConfirmed: {
			"💵 *Cash Payment Selected*\n\nGreat! We'll reserve your appointment for *{service}*.\n\n📍 *Frank Beauty Spot*, Tom Mboya Street, Nairobi CBD\n\n*See you soon!* 😊",
		},
		KeyCancelled: {
			"No problem, your booking has been cancelled. Come back anytime! 😊",
		},
		KeyChooseLanguage: {
			"🌍 Which language would you like me to use?\n• English\n• Swahili\n• Sheng",
		},
		KeyLanguageSet: {
			"Done! I'll speak English from now on. ✅",
		},
		KeyLanguageInvalid: {
			"Please pick one of: *English*, *Swahili*, or *Sheng*.",
		},
		KeyGenericError: {
			"😔 Something went wrong on our side. Let's start over - how can I help you?",
		},
	},

	session.LanguageSwenglish: {
		KeyGreeting: {
			"Karibu Frank Beauty Spot! 💇‍♀\n\nNiaje, how can I help leo? 😊\n\nYou can:\n• Ask about our services\n• Book appointment\n• Check bei zetu\n• Ask for our location",
			"Hello hello! Karibu Frank Beauty Spot 💅\n\nUnaweza ask about services, prices ama ubook appointment. What would you like?",
		},
		KeyMainMenu: {
			"Naweza kusaidia na:\n• Services zetu na bei\n• Kubook appointment\n• Location yetu na hours\n\nUngependa nini?",
		},
		KeyServicesList: {
			"💇‍♀ *Services Zetu & Bei* 💅\n\n{menu}\n\n*Which service unapenda?* 😊\n\n*Ama ungependa kubook appointment?*",
		},
		KeyPriceList: {
			"💰 *Bei Zetu*\n\n{prices}\n\nDeposit ya KES {deposit} inasecure slot yako. Ungependa kubook?",
		},
		KeyLocation: {
			"📍 Tuko {location}.\n\n{hours}\n\nKuna secure parking kwa customers wetu.",
		},
		KeyThanks: {
			"Karibu sana! Tutaonana kwa salon! 😊",
			"Hakuna shida! See you soon! 💅",
		},
		KeyAskService: {
			"Poa! Let's book appointment yako! 💅\n\n*Which service ungependa?*\n{menu}\n\n*Tafadhali niambie service unayotaka.*",
		},
		KeyAskServiceAgain: {
			"Samahani, sijaelewa. *Which ya hizi services ungependa?*\n{menu}",
		},
		KeyAskDate: {
			"Chaguo nzuri! {service} it is! 📅\n\n*Ungependa kuja lini?*\n• Leo (today)\n• Kesho (tomorrow)\n• Siku ya wiki (e.g. Friday)",
		},
		KeyAskDateDirect: {
			"Sawa, *{service}*! 📅\n\n*Ungependa kuja lini?*\n• Leo (today)\n• Kesho (tomorrow)\n• Siku ya wiki (e.g. Friday)",
		},
		KeyAskDateAgain: {
			"Sijaelewa hiyo date. Kwa {service} yako, sema *today*, *tomorrow*, ama weekday name.",
		},
		KeyAskTime: {
			"*Saa ngapi inakufaa?* ⏰\n\n• Morning (9 AM - 12 PM)\n• Afternoon (2 PM - 5 PM)\n• Evening (5 PM - 7 PM)\n• Specific time (e.g. 2pm)",
		},
		KeyAskTimeAgain: {
			"Sijaelewa hiyo time. Sema *morning*, *afternoon*, *evening*, ama time kama *2pm*.",
		},
		KeyAskName: {
			"Perfect! 😊\n\n*Tafadhali niambie jina lako for the {service} appointment:*",
		},
		KeyAskNameAgain: {
			"Samahani, nahitaji jina for the booking. *Niandike jina gani?*",
		},
		KeyAskPhone: {
			"Karibu tumalize! 📱\n\n*Tuma namba yako ya simu:*\n\n📞 *Format:* 07XXXXXXXX ama 2547XXXXXXXX",
		},
		KeyAskPhoneAgain: {
			"❌ *That phone number is invalid!* Please send like this: *0712345678* ama *254712345678*",
		},
		KeyConfirmSummary: {
			"📋 *Confirm appointment yako:*\n\n• *Service:* {service}\n• *Date:* {date}\n• *Time:* {time}\n• *Jina:* {name}\n• *Simu:* {phone}\n\nJibu *yes* kuconfirm ama *no* kucancel.",
		},
		KeyPaymentInfo: {
			"💳 *Jinsi ya kulipa*\n\nTunakubali M-Pesa (Till: 123456), cash, na debit/credit cards.\n\nDeposit ya KES {deposit} kwa M-Pesa inasecure booking yako - the rest unalipa kwa salon.",
		},
		KeyPaymentOptions: {
			"💳 *Pay for {service} - KES {amount}*\n\n*Choose payment method:*\n🔹 *M-Pesa STK Push* - Automatic & easy (tuma namba yako)\n🔹 *M-Pesa Manual* - Lipa manually\n🔹 *Cash at Salon* - Pay ukifika\n\n*Ungependa which option?*",
		},
		KeyPaymentPhone: {
			"📱 *Please send your phone number*\n\n*Amount:* KES {amount}\n*Service:* {service}\n\n📞 *Format:* 07XXXXXXXX ama 2547XXXXXXXX\n\nNitakutumia M-Pesa STK push direct kwa phone yako! 😊",
		},
		KeyPaymentSent: {
			"✅ *STK push imetumwa!*\n\nCheck phone yako for the KES {amount} M-Pesa prompt. Just approve! 😊\n\n*Once confirmed, appointment yako itakuwa secured!* 🎉",
		},
		KeyPaymentFailed: {
			"❌ *Imefail!* M-Pesa declined.\n\nJaribu tena baadaye ama ulipe cash kwa salon.",
		},
		KeyPaymentConfirmed: {
			"🎉 *Payment imefika!* Receipt: {receipt}\n\nAppointment yako iko confirmed. Tutaonana!",
		},
		KeyManualMpesa: {
			"📋 *Manual M-Pesa for {service}*\n\n1. Enda M-Pesa\n2. Chagua \"Lipa Na M-Pesa\"\n3. Chagua \"Pay Bill\"\n4. *Business No:* {shortcode}\n5. *Account No:* {account}\n6. *Amount:* KES {amount}\n\nTuma confirmation kwangu and we'll confirm booking yako! 📸",
		},
		KeyCashConfirmed: {
			"💵 *Cash Payment Selected*\n\nSawa! Tutareserve appointment yako ya *{service}*.\n\n📍 *Frank Beauty Spot*, Tom Mboya Street, Nairobi CBD\n\n*Tutaonana!* 😊",
		},
		KeyCancelled: {
			"Sawa, booking yako imecancelled. Karibu tena wakati wowote! 😊",
		},
		KeyChooseLanguage: {
			"🌍 Ungependa nitumie language gani?\n• English\n• Swahili\n• Sheng",
		},
		KeyLanguageSet: {
			"Sawa! Nitaongea Swahili-English mix kuanzia sasa. ✅",
		},
		KeyLanguageInvalid: {
			"Tafadhali chagua moja: *English*, *Swahili*, ama *Sheng*.",
		},
		KeyGenericError: {
			"😔 Kuna kitu imeenda wrong upande wetu. Tuanze tena - nikusaidie aje?",
		},
	},

	session.LanguageSheng: {
		KeyGreeting: {
			"Niaje msee! Karibu Frank Beauty Spot! 💇‍♀\n\nNikusort aje leo? 🔥\n\nUnaweza:\n• Check services zetu\n• Book appointment\n• Check bei\n• Uliza location",
			"Vipi buda! Frank Beauty Spot ndio hii 💅\n\nServices, bei, ama appointment - sema tu!",
		},
		KeyMainMenu: {
			"Naeza kusort na:\n• Services na bei zetu\n• Kubook appointment\n• Location na hours\n\nUnataka gani?",
		},
		KeyServicesList: {
			"💇‍♀ *Services Zetu & Bei* 💅\n\n{menu}\n\n*Gani inakubamba?* 🔥\n\n*Ama tubook appointment moja time?*",
		},
		KeyPriceList: {
			"💰 *Bei Zetu*\n\n{prices}\n\nDeposit ya KES {deposit} inashikilia slot yako. Tubook?",
		},
		KeyLocation: {
			"📍 Tuko {location}.\n\n{hours}\n\nParking iko secure kabisa.",
		},
		KeyThanks: {
			"Poa msee! Tutaonana kwa shop! 🔥",
			"Fiti! Kuja tukusort! 💅",
		},
		KeyAskService: {
			"Fiti! Tubook appointment yako! 💅\n\n*Service gani unataka?*\n{menu}\n\n*Sema tu ile unataka.*",
		},
		KeyAskServiceAgain: {
			"Aii sijashika. *Gani ya hizi services unataka?*\n{menu}",
		},
		KeyAskDate: {
			"Chaguo noma! {service} ndio hiyo! 📅\n\n*Unakuja lini?*\n• Leo\n• Kesho\n• Siku ya wiki (mfano Friday)",
		},
		KeyAskDateDirect: {
			"Fiti, *{service}*! 📅\n\n*Unakuja lini?*\n• Leo\n• Kesho\n• Siku ya wiki (mfano Friday)",
		},
		KeyAskDateAgain: {
			"Hiyo date sijaipata. Kwa {service} yako, sema *today*, *tomorrow*, ama siku kama Friday.",
		},
		KeyAskTime: {
			"*Saa ngapi iko fiti?* ⏰\n\n• Morning (9 AM - 12 PM)\n• Afternoon (2 PM - 5 PM)\n• Evening (5 PM - 7 PM)\n• Time exact (mfano 2pm)",
		},
		KeyAskTimeAgain: {
			"Hiyo time sijaishika. Sema *morning*, *afternoon*, *evening*, ama kitu kama *2pm*.",
		},
		KeyAskName: {
			"Fiti kabisa! 😎\n\n*Nipatie jina lako for the {service} appointment:*",
		},
		KeyAskNameAgain: {
			"Buda nahitaji jina ya booking. *Niandike nani?*",
		},
		KeyAskPhone: {
			"Tumekaribia kumaliza! 📱\n\n*Tuma namba yako ya simu:*\n\n📞 *Format:* 07XXXXXXXX ama 2547XXXXXXXX",
		},
		KeyAskPhoneAgain: {
			"❌ *Hiyo namba si sahihi!* Tafadhali tuma kama hivi: *0712345678* ama *254712345678*",
		},
		KeyConfirmSummary: {
			"📋 *Confirm appointment yako:*\n\n• *Service:* {service}\n• *Date:* {date}\n• *Time:* {time}\n• *Jina:* {name}\n• *Simu:* {phone}\n\nSema *yes* kuconfirm ama *no* kucancel.",
		},
		KeyPaymentInfo: {
			"💳 *Vile unalipa*\n\nTunachukua M-Pesa (Till: 123456), cash, na debit/credit cards.\n\nDeposit ya KES {deposit} kwa M-Pesa inashikilia booking yako - iliyobaki unalipa ukifika.",
		},
		KeyPaymentOptions: {
			"💳 *Lipa {service} - KES {amount}*\n\n*Chagua payment method:*\n🔹 *M-Pesa STK Push* - Automatic, simple (tuma namba yako)\n🔹 *M-Pesa Manual* - Lipa na manual\n🔹 *Cash Kwa Salon* - Pay when you come\n\n*Which one unapenda?*",
		},
		KeyPaymentPhone: {
			"📱 *Tuma namba yako ya simu*\n\n*Amount:* KES {amount}\n*Service:* {service}\n\n📞 *Format:* 07XXXXXXXX ama 2547XXXXXXXX\n\nNitakutumia M-Pesa STK push direct kwa phone yako! 🔥",
		},
		KeyPaymentSent: {
			"✅ *STK push imetumwa!*\n\nCheck phone yako kwa KES {amount} M-Pesa prompt. Approve tu! 🔥\n\n*Once confirmed, appointment yako itakuwa secured!* 🎉",
		},
		KeyPaymentFailed: {
			"❌ *Haiwezi!* M-Pesa imekataa.\n\nJaribu tena baadaye ama ulipe cash kwa salon.",
		},
		KeyPaymentConfirmed: {
			"🎉 *Pesa imeingia!* Receipt: {receipt}\n\nAppointment yako iko confirmed. Tutaonana msee!",
		},
		KeyManualMpesa: {
			"📋 *Manual M-Pesa ya {service}*\n\n1. Ingiza M-Pesa\n2. Chagua \"Lipa Na M-Pesa\"\n3. Chagua \"Pay Bill\"\n4. *Business Number:* {shortcode}\n5. *Account Number:* {account}\n6. *Amount:* KES {amount}\n\nTuma confirmation message kwangu, tutaconfirm appointment ukishalipa! 📸",
		},
		KeyCashConfirmed: {
			"💵 *Cash Payment Chosen*\n\nSawa! Tutakuwekea appointment ya *{service}*.\n\n📍 *Frank Beauty Spot*, Tom Mboya Street, Nairobi CBD\n\n*Tuonane!* 😎",
		},
		KeyCancelled: {
			"Poa, booking imecancelled. Kuja any time msee! 😎",
		},
		KeyChooseLanguage: {
			"🌍 Unataka niongee language gani?\n• English\n• Swahili\n• Sheng",
		},
		KeyLanguageSet: {
			"Fiti! Tutabonga sheng kuanzia saa hii. 🔥",
		},
		KeyLanguageInvalid: {
			"Chagua moja tu: *English*, *Swahili*, ama *Sheng*.",
		},
		KeyGenericError: {
			"😔 Kitu imego wrong huku kwetu. Tuanze fresh - nikusort aje?",
		},
	},
}
